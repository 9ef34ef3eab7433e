package database

import (
	"context"
	"fmt"

	"shareit/internal/models"
)

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (item_id, text, author_name, created)
              VALUES (?, ?, ?, ?)`
	result, err := db.db.ExecContext(ctx, query,
		comment.ItemID,
		comment.Text,
		comment.AuthorName,
		fmtTime(comment.Created),
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id
	return nil
}

// GetCommentsByItemIDs returns all comments of the given items, oldest first.
func (db *DB) GetCommentsByItemIDs(ctx context.Context, itemIDs []int64) ([]models.Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT id, item_id, text, author_name, created
              FROM comments WHERE item_id IN (%s) ORDER BY id`, inPlaceholders(len(itemIDs)))

	rows, err := db.db.QueryContext(ctx, query, int64Args(itemIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments by item ids: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		var created string
		err := rows.Scan(&comment.ID, &comment.ItemID, &comment.Text, &comment.AuthorName, &created)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if comment.Created, err = parseTime(created); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shareit/internal/models"
)

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	query := `INSERT INTO item_requests (description, creator_id, created)
              VALUES (?, ?, ?)`
	result, err := db.db.ExecContext(ctx, query,
		request.Description,
		request.CreatorID,
		fmtTime(request.Created),
	)
	if err != nil {
		return fmt.Errorf("failed to create item request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	query := `SELECT id, description, creator_id, created
              FROM item_requests WHERE id = ?`

	var request models.ItemRequest
	var created string
	err := db.db.QueryRowContext(ctx, query, id).Scan(
		&request.ID, &request.Description, &request.CreatorID, &created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item request: %w", err)
	}
	if request.Created, err = parseTime(created); err != nil {
		return nil, err
	}
	return &request, nil
}

// GetRequestsByCreator returns the creator's own requests, newest first, unpaged.
func (db *DB) GetRequestsByCreator(ctx context.Context, creatorID int64) ([]models.ItemRequest, error) {
	query := `SELECT id, description, creator_id, created
              FROM item_requests WHERE creator_id = ?
              ORDER BY created DESC`

	rows, err := db.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests by creator: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// GetRequestsExcludingCreator returns other users' requests, newest first.
func (db *DB) GetRequestsExcludingCreator(ctx context.Context, creatorID int64, limit, offset int) ([]models.ItemRequest, error) {
	query := `SELECT id, description, creator_id, created
              FROM item_requests WHERE creator_id != ?
              ORDER BY created DESC LIMIT ? OFFSET ?`

	rows, err := db.db.QueryContext(ctx, query, creatorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests excluding creator: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

func scanRequests(rows *sql.Rows) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	for rows.Next() {
		var request models.ItemRequest
		var created string
		err := rows.Scan(&request.ID, &request.Description, &request.CreatorID, &created)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item request: %w", err)
		}
		if request.Created, err = parseTime(created); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

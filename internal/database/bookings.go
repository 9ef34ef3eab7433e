package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
              VALUES (?, ?, ?, ?, ?)`
	result, err := db.db.ExecContext(ctx, query,
		fmtTime(booking.Start),
		fmtTime(booking.End),
		booking.ItemID,
		booking.BookerID,
		booking.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT id, start_date, end_date, item_id, booker_id, status
              FROM bookings WHERE id = ?`

	row := db.db.QueryRowContext(ctx, query, id)
	booking, err := scanBookingRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ? WHERE id = ?`
	result, err := db.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetBookingsByItemIDs returns every booking of the given items. Used to
// compute last/next booking info for owner views in one pass.
func (db *DB) GetBookingsByItemIDs(ctx context.Context, itemIDs []int64) ([]models.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT id, start_date, end_date, item_id, booker_id, status
              FROM bookings WHERE item_id IN (%s)`, inPlaceholders(len(itemIDs)))

	rows, err := db.db.QueryContext(ctx, query, int64Args(itemIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by item ids: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListBookerBookings returns the booker's bookings filtered by state,
// ordered by start date descending.
func (db *DB) ListBookerBookings(ctx context.Context, bookerID int64, state string, now time.Time, limit, offset int) ([]models.Booking, error) {
	clause, args, err := stateClause(state, false, now)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, start_date, end_date, item_id, booker_id, status
              FROM bookings WHERE booker_id = ?%s
              ORDER BY start_date DESC LIMIT ? OFFSET ?`, clause)

	queryArgs := append([]any{bookerID}, args...)
	queryArgs = append(queryArgs, limit, offset)

	rows, err := db.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list booker bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListOwnerBookings returns bookings of the given items filtered by state,
// ordered by start date descending. The owner view of PAST excludes
// rejected bookings.
func (db *DB) ListOwnerBookings(ctx context.Context, itemIDs []int64, state string, now time.Time, limit, offset int) ([]models.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	clause, args, err := stateClause(state, true, now)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, start_date, end_date, item_id, booker_id, status
              FROM bookings WHERE item_id IN (%s)%s
              ORDER BY start_date DESC LIMIT ? OFFSET ?`, inPlaceholders(len(itemIDs)), clause)

	queryArgs := append(int64Args(itemIDs), args...)
	queryArgs = append(queryArgs, limit, offset)

	rows, err := db.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// HasApprovedPastBooking reports whether the user has at least one approved
// booking of the item that started before the given moment. Proof of use
// for commenting.
func (db *DB) HasApprovedPastBooking(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
              WHERE item_id = ? AND booker_id = ? AND status = ? AND start_date < ?`

	var count int
	err := db.db.QueryRowContext(ctx, query, itemID, bookerID, models.StatusApproved, fmtTime(before)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count approved bookings: %w", err)
	}
	return count > 0, nil
}

func stateClause(state string, ownerView bool, now time.Time) (string, []any, error) {
	nowStr := fmtTime(now)
	switch state {
	case models.StateAll:
		return "", nil, nil
	case models.StateCurrent:
		return " AND start_date <= ? AND end_date >= ?", []any{nowStr, nowStr}, nil
	case models.StatePast:
		if ownerView {
			return " AND end_date < ? AND status != ?", []any{nowStr, models.StatusRejected}, nil
		}
		return " AND end_date < ?", []any{nowStr}, nil
	case models.StateFuture:
		return " AND start_date > ?", []any{nowStr}, nil
	case models.StateWaiting, models.StateRejected:
		return " AND status = ?", []any{state}, nil
	default:
		return "", nil, fmt.Errorf("unknown booking state filter: %s", state)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingRow(row rowScanner) (*models.Booking, error) {
	var booking models.Booking
	var start, end string
	err := row.Scan(&booking.ID, &start, &end, &booking.ItemID, &booking.BookerID, &booking.Status)
	if err != nil {
		return nil, err
	}
	if booking.Start, err = parseTime(start); err != nil {
		return nil, err
	}
	if booking.End, err = parseTime(end); err != nil {
		return nil, err
	}
	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

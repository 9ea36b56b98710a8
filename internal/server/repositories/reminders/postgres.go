package reminders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/phonesaver/phonesaver/internal/common"
	"github.com/phonesaver/phonesaver/internal/dbx"
	"github.com/phonesaver/phonesaver/internal/server/models"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rem *models.Reminder) error {
	query :=
		`INSERT INTO reminders (id, contact_id, remind_at, message, is_completed)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		rem.ID, rem.ContactID, rem.RemindAt, rem.Message, rem.IsCompleted)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByContact(ctx context.Context, contactID int64) ([]*models.Reminder, error) {
	query :=
		`SELECT id, contact_id, remind_at, message, is_completed, created_at FROM reminders
		 WHERE contact_id = $1
		 ORDER BY remind_at
		 `

	rows, err := r.db.QueryContext(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Reminder
	for rows.Next() {
		var item models.Reminder
		if err := rows.Scan(
			&item.ID, &item.ContactID, &item.RemindAt, &item.Message,
			&item.IsCompleted, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) SetCompleted(ctx context.Context, id string, contactID int64, completed bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reminders SET is_completed = $1 WHERE id = $2 AND contact_id = $3`,
		completed, id, contactID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res.RowsAffected())
}

func (r *PostgresRepository) Delete(ctx context.Context, id string, contactID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reminders WHERE id = $1 AND contact_id = $2`, id, contactID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res.RowsAffected())
}

func requireOneRow(n int64, err error) error {
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

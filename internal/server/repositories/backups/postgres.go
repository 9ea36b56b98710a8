package backups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/phonesaver/phonesaver/internal/common"
	"github.com/phonesaver/phonesaver/internal/dbx"
	"github.com/phonesaver/phonesaver/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID int64, storageKey string) (int64, error) {
	query :=
		`INSERT INTO backups (user_id, storage_key)
		 VALUES ($1, $2)
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query, userID, storageKey).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Latest(ctx context.Context, userID int64) (*models.BackupSnapshot, error) {
	query :=
		`SELECT id, user_id, storage_key, created_at FROM backups
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1
		 `

	var s models.BackupSnapshot
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.StorageKey, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &s, nil
}

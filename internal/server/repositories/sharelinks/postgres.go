package sharelinks

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

func (r *PostgresRepository) Create(ctx context.Context, link *models.ShareLink) (int64, error) {
	query :=
		`INSERT INTO share_links (token, contact_id, user_id, expires_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		link.Token, link.ContactID, link.UserID, link.ExpiresAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	query :=
		`SELECT id, token, contact_id, user_id, expires_at, created_at FROM share_links
		 WHERE token = $1 AND expires_at > now()
		 `

	var link models.ShareLink
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&link.ID, &link.Token, &link.ContactID, &link.UserID,
		&link.ExpiresAt, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &link, nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM share_links WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/phonesaver/phonesaver/internal/common"
	"github.com/phonesaver/phonesaver/internal/contact"
	"github.com/phonesaver/phonesaver/internal/dbx"
	"github.com/phonesaver/phonesaver/internal/server/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectColumns = `id, name, phone_cipher, tags, last_interaction, birthday, frequency, preferred_time, notes`

// Upsert inserts or replaces a cached record by id.
func (r *SQLiteRepository) Upsert(ctx context.Context, rec *contact.Record) error {
	query := `INSERT INTO contacts (id, name, phone_cipher, tags, last_interaction, birthday, frequency, preferred_time, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				phone_cipher = excluded.phone_cipher,
				tags = excluded.tags,
				last_interaction = excluded.last_interaction,
				birthday = excluded.birthday,
				frequency = excluded.frequency,
				preferred_time = excluded.preferred_time,
				notes = excluded.notes
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Name, rec.PhoneCipher, models.JoinTags(rec.Tags),
		rec.LastInteraction, rec.Birthday, string(rec.Frequency), string(rec.PreferredTime), rec.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert contact: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*contact.Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM contacts WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return rec, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]contact.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM contacts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select contacts: %w", err)
	}
	defer rows.Close()

	var result []contact.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, recs []contact.Record) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM contacts`); err != nil {
		return fmt.Errorf("failed to clear contacts: %w", err)
	}
	for i := range recs {
		if err := r.Upsert(ctx, &recs[i]); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*contact.Record, error) {
	var (
		rec             contact.Record
		tags            string
		lastInteraction sql.NullTime
		frequency       string
		preferredTime   string
	)
	err := row.Scan(&rec.ID, &rec.Name, &rec.PhoneCipher, &tags, &lastInteraction,
		&rec.Birthday, &frequency, &preferredTime, &rec.Notes)
	if err != nil {
		return nil, err
	}
	rec.Tags = models.SplitTags(tags)
	rec.Frequency = contact.Frequency(frequency)
	rec.PreferredTime = contact.PreferredTime(preferredTime)
	if lastInteraction.Valid {
		t := lastInteraction.Time
		rec.LastInteraction = &t
	}
	return &rec, nil
}

package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/phonesaver/phonesaver/internal/common"
	"github.com/phonesaver/phonesaver/internal/dbx"
	"github.com/phonesaver/phonesaver/internal/server/models"
)

const selectColumns = `id, user_id, name, phone_cipher, tags, last_interaction, birthday, frequency, preferred_time, notes, created_at, updated_at`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Contact) (int64, error) {
	query :=
		`INSERT INTO contacts (user_id, name, phone_cipher, tags, last_interaction, birthday, frequency, preferred_time, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		c.UserID, c.Name, c.PhoneCipher, models.JoinTags(c.Tags),
		c.LastInteraction, c.Birthday, c.Frequency, c.PreferredTime, c.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, userID int64) (*models.Contact, error) {
	query := `SELECT ` + selectColumns + ` FROM contacts WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, id, userID)
	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID int64, f Filter) ([]*models.Contact, error) {
	query := `SELECT ` + selectColumns + ` FROM contacts WHERE user_id = $1`
	args := []any{userID}

	if f.Query != "" {
		args = append(args, "%"+escapeLike(f.Query)+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if f.Tag != "" {
		// Tags rest comma-joined; wrapping both sides in commas makes the
		// match exact rather than substring.
		args = append(args, "%,"+escapeLike(f.Tag)+",%")
		query += fmt.Sprintf(" AND (',' || tags || ',') LIKE $%d", len(args))
	}

	// Sort keys are whitelisted; anything else keeps insertion order.
	validSortKeys := map[string]string{
		SortByName:            "name",
		SortByLastInteraction: "last_interaction",
		SortByBirthday:        "birthday",
	}
	if col, ok := validSortKeys[f.SortBy]; ok {
		query += " ORDER BY " + col
		if f.Desc {
			query += " DESC"
		}
	} else {
		query += " ORDER BY id"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Patch(ctx context.Context, id, userID int64, p models.ContactPatch) error {
	sets := []string{"updated_at = now()"}
	args := []any{}

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.PhoneCipher != nil {
		add("phone_cipher", *p.PhoneCipher)
	}
	if p.Tags != nil {
		add("tags", models.JoinTags(*p.Tags))
	}
	if p.LastInteraction != nil {
		add("last_interaction", *p.LastInteraction)
	}
	if p.Birthday != nil {
		add("birthday", *p.Birthday)
	}
	if p.Frequency != nil {
		add("frequency", *p.Frequency)
	}
	if p.PreferredTime != nil {
		add("preferred_time", *p.PreferredTime)
	}
	if p.Notes != nil {
		add("notes", *p.Notes)
	}

	args = append(args, id)
	idArg := len(args)
	args = append(args, userID)
	userArg := len(args)

	query := fmt.Sprintf("UPDATE contacts SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(sets, ", "), idArg, userArg)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CountForUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// escapeLike escapes the LIKE metacharacters so user input matches only
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*models.Contact, error) {
	var (
		c               models.Contact
		tags            string
		lastInteraction sql.NullTime
	)
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.PhoneCipher, &tags, &lastInteraction,
		&c.Birthday, &c.Frequency, &c.PreferredTime, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Tags = models.SplitTags(tags)
	if lastInteraction.Valid {
		t := lastInteraction.Time
		c.LastInteraction = &t
	}
	return &c, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-booking/internal/model"
)

// ErrThemeNotFound is returned when a theme lookup fails.
var ErrThemeNotFound = errors.New("theme not found")

// ThemeRepo provides CRUD operations for the themes table.
type ThemeRepo struct {
	db *sql.DB
}

func NewThemeRepo(db *sql.DB) *ThemeRepo { return &ThemeRepo{db: db} }

const themeColumns = `id, name, description, price, images, is_available, created_at, updated_at`

func scanTheme(row rowScanner) (*model.Theme, error) {
	var (
		t           model.Theme
		description sql.NullString
		images      []byte
	)
	if err := row.Scan(&t.ID, &t.Name, &description, &t.Price, &images, &t.IsAvailable, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Description = description.String
	t.Images = []string{}
	if err := scanJSON(images, &t.Images); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns themes ordered by name; onlyAvailable hides disabled ones.
func (r *ThemeRepo) List(ctx context.Context, onlyAvailable bool) ([]*model.Theme, error) {
	q := `SELECT ` + themeColumns + ` FROM themes`
	if onlyAvailable {
		q += ` WHERE is_available = TRUE`
	}
	q += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Theme{}
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns ErrThemeNotFound when no row matches.
func (r *ThemeRepo) GetByID(ctx context.Context, id uint64) (*model.Theme, error) {
	t, err := scanTheme(r.db.QueryRowContext(ctx, `SELECT `+themeColumns+` FROM themes WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrThemeNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *ThemeRepo) Create(ctx context.Context, t *model.Theme) error {
	images, err := jsonValue(t.Images)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO themes (name, description, price, images, is_available) VALUES (?, ?, ?, ?, ?)`,
		t.Name, t.Description, t.Price, images, t.IsAvailable)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*t = *fresh
	return nil
}

func (r *ThemeRepo) Update(ctx context.Context, t *model.Theme) error {
	images, err := jsonValue(t.Images)
	if err != nil {
		return err
	}
	const q = `UPDATE themes
	           SET name = ?, description = ?, price = ?, images = ?, is_available = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, t.Name, t.Description, t.Price, images, t.IsAvailable, t.ID); err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *fresh
	return nil
}

// ToggleAvailability flips is_available and returns the updated theme.
func (r *ThemeRepo) ToggleAvailability(ctx context.Context, id uint64) (*model.Theme, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE themes SET is_available = NOT is_available, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrThemeNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ThemeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM themes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrThemeNotFound
	}
	return nil
}

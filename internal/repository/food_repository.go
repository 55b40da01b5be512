package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-booking/internal/model"
)

// ErrFoodItemNotFound is returned when a food item lookup fails.
var ErrFoodItemNotFound = errors.New("food item not found")

// FoodRepo provides CRUD operations for the food_items table.
type FoodRepo struct {
	db *sql.DB
}

// NewFoodRepo returns a FoodRepo bound to db.
func NewFoodRepo(db *sql.DB) *FoodRepo { return &FoodRepo{db: db} }

const foodColumns = `id, name, category, price, is_veg, description, image, is_available, created_at, updated_at`

func scanFood(row rowScanner) (*model.FoodItem, error) {
	var (
		f                  model.FoodItem
		description, image sql.NullString
	)
	if err := row.Scan(&f.ID, &f.Name, &f.Category, &f.Price, &f.IsVeg, &description, &image,
		&f.IsAvailable, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.Description = description.String
	f.Image = image.String
	return &f, nil
}

// List returns the food items selected by filter ordered by category then
// name.
func (r *FoodRepo) List(ctx context.Context, filter model.FoodFilter) ([]*model.FoodItem, error) {
	q := `SELECT ` + foodColumns + ` FROM food_items WHERE 1 = 1`
	var args []any
	if filter.OnlyAvailable {
		q += ` AND is_available = TRUE`
	}
	if filter.Category != "" {
		q += ` AND category = ?`
		args = append(args, string(filter.Category))
	}
	q += ` ORDER BY category, name`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.FoodItem{}
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns ErrFoodItemNotFound when no row matches.
func (r *FoodRepo) GetByID(ctx context.Context, id uint64) (*model.FoodItem, error) {
	f, err := scanFood(r.db.QueryRowContext(ctx, `SELECT `+foodColumns+` FROM food_items WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFoodItemNotFound
		}
		return nil, err
	}
	return f, nil
}

// Create inserts f and refreshes it from the stored row.
func (r *FoodRepo) Create(ctx context.Context, f *model.FoodItem) error {
	const q = `INSERT INTO food_items (name, category, price, is_veg, description, image, is_available)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, f.Name, string(f.Category), f.Price, f.IsVeg, f.Description, f.Image, f.IsAvailable)
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
	*f = *fresh
	return nil
}

// Update writes every editable column of f.
func (r *FoodRepo) Update(ctx context.Context, f *model.FoodItem) error {
	const q = `UPDATE food_items
	           SET name = ?, category = ?, price = ?, is_veg = ?, description = ?, image = ?, is_available = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, f.Name, string(f.Category), f.Price, f.IsVeg, f.Description, f.Image,
		f.IsAvailable, f.ID); err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, f.ID)
	if err != nil {
		return err
	}
	*f = *fresh
	return nil
}

// ToggleAvailability flips is_available and returns the updated item.
func (r *FoodRepo) ToggleAvailability(ctx context.Context, id uint64) (*model.FoodItem, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE food_items SET is_available = NOT is_available, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrFoodItemNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a food item.  Bookings keep their own snapshot of the
// item so nothing else needs to change.
func (r *FoodRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM food_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFoodItemNotFound
	}
	return nil
}

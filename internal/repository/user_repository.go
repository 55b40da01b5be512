package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/venue-booking/internal/model"
)

// UserRepo reads the users table.  Accounts are created and managed by the
// upstream auth service; this service only needs contact projections for
// booking listings.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Summaries fetches the projections of the given users keyed by id.
// Unknown ids are simply missing from the map.
func (r *UserRepo) Summaries(ctx context.Context, ids []uint64) (map[uint64]*model.UserSummary, error) {
	out := make(map[uint64]*model.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	q := fmt.Sprintf("SELECT id,name,email,phone FROM users WHERE id IN (%s)", placeholders(len(ids)))
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			u     model.UserSummary
			phone sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &phone); err != nil {
			return nil, err
		}
		u.Phone = phone.String
		out[u.ID] = &u
	}
	return out, rows.Err()
}

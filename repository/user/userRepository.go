// repository/user/userRepository.go
package userrepo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"musicrental/model"
)

type Repo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
	ByUsername(ctx context.Context, username string) (*model.User, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db: db} }

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `SELECT id, username, email, role, created_at FROM users WHERE id = $1`
	var u model.User
	if err := r.db.GetContext(ctx, &u, q, id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) ByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `SELECT id, username, email, role, created_at FROM users WHERE username = $1`
	var u model.User
	if err := r.db.GetContext(ctx, &u, q, username); err != nil {
		return nil, err
	}
	return &u, nil
}

// repository/item/itemRepository.go
package itemrepo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"musicrental/model"
)

type Repo interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
	// ByIDForUpdate locks the item row for the rest of the transaction.
	// Booking creation takes this lock before its conflict query so two
	// concurrent creates for the same item serialize.
	ByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Item, error)
	ByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db: db} }

const itemColumns = `
	id, kind, owner_id, name, description, price_per_day,
	instrument_type, family, age, composer, category`

func (r *repo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	var it model.Item
	if err := r.db.GetContext(ctx, &it, q, id); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repo) ByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	var it model.Item
	if err := tx.GetContext(ctx, &it, q, id); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repo) ByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 ORDER BY id`
	var out []model.Item
	if err := r.db.SelectContext(ctx, &out, q, ownerID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) List(ctx context.Context) ([]model.Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items ORDER BY id DESC`
	var out []model.Item
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

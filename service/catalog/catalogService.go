package catalog

import (
	"context"
	"database/sql"
	"errors"

	"musicrental/model"
	itemrepo "musicrental/repository/item"
	"musicrental/util/apperr"
)

// Service is the read side of the catalog. Registration, search and price
// updates are handled elsewhere.
type Service interface {
	List(ctx context.Context) ([]model.Item, error)
	Detail(ctx context.Context, id int64) (*model.Item, error)
	ByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
}

type service struct{ items itemrepo.Repo }

func New(items itemrepo.Repo) Service { return &service{items: items} }

func (s *service) List(ctx context.Context) ([]model.Item, error) {
	return s.items.List(ctx)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Item, error) {
	it, err := s.items.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("item not found with id: %d", id)
	}
	return it, err
}

func (s *service) ByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	return s.items.ByOwner(ctx, ownerID)
}

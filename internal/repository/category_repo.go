package repository

import (
	"context"
	"errors"
	"fmt"

	"coursehub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepository interface {
	GetCategoryByHref(ctx context.Context, href string) (*model.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*model.Category, error)
}

type categoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepo{pool: pool}
}

func (r *categoryRepo) GetCategoryByHref(ctx context.Context, href string) (*model.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories cat WHERE cat.href = $1`, href)
}

func (r *categoryRepo) GetCategoryByID(ctx context.Context, categoryID string) (*model.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories cat WHERE cat.id = $1`, categoryID)
}

func (r *categoryRepo) getOne(ctx context.Context, query, arg string) (*model.Category, error) {
	var cat model.Category
	if err := r.pool.QueryRow(ctx, query, arg).Scan(categoryFields(&cat)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting category %s: %w", arg, err)
	}
	return &cat, nil
}

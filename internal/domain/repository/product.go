package repository

import (
	"context"

	"github.com/speeti/speeti/internal/domain/model"
)

// ProductRepository provides read access to the product catalog.
type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
}

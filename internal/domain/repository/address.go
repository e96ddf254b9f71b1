package repository

import (
	"context"

	"github.com/speeti/speeti/internal/domain/model"
)

// AddressRepository provides read access to delivery addresses.
type AddressRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Address, error)
}

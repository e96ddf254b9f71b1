package usecase

import (
	"go.uber.org/fx"

	"github.com/speeti/speeti/internal/config"
	"github.com/speeti/speeti/internal/domain/repository"
	pkgAuth "github.com/speeti/speeti/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewTrackingUseCase,
	newOrderUseCase,
)

type orderParams struct {
	fx.In

	Orders   repository.OrderRepository
	Products repository.ProductRepository
	Tokens   pkgAuth.AccessTokenGenerator
	Config   *config.Config
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Products, p.Tokens, p.Config.DeliveryFee, p.Config.FreeDeliveryOver)
}

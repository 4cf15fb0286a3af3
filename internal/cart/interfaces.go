package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
)

// ItemRepository defines the persistence surface required by the cart service.
type ItemRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	FindByID(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error)
	FindByProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, qty int) error
	UpdateLine(ctx context.Context, itemID uuid.UUID, qty int, applied *decimal.Decimal) error
	SetAppliedPrice(ctx context.Context, itemID uuid.UUID, applied *decimal.Decimal) error
	Delete(ctx context.Context, userID, itemID uuid.UUID) (int64, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

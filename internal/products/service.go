package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yukselticaret/trendyshop-backend/internal/pricing"
	"github.com/yukselticaret/trendyshop-backend/internal/tiers"
	"github.com/yukselticaret/trendyshop-backend/pkg/db"
	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
	pkgerrors "github.com/yukselticaret/trendyshop-backend/pkg/errors"
	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
	"github.com/yukselticaret/trendyshop-backend/pkg/metrics"
)

// Service exposes product reads and quantity quotes for product pages.
type Service interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListTiers(ctx context.Context, productID uuid.UUID) (*TierListDTO, error)
	Quote(ctx context.Context, productID uuid.UUID, qty int) (*QuoteDTO, error)
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo    productReader
	tiers   tiers.Reader
	metrics *metrics.PricingMetrics
	logg    *logger.Logger
}

// NewService constructs the product service.
func NewService(repo productReader, tierReader tiers.Reader, m *metrics.PricingMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tierReader == nil {
		return nil, fmt.Errorf("tier reader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tiers: tierReader, metrics: m, logg: logg}, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product), nil
}

func (s *service) ListTiers(ctx context.Context, productID uuid.UUID) (*TierListDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	tierSet, degraded := s.tiersFor(ctx, product, "list_tiers")
	list := newTierListDTO(product, tierSet, degraded)
	return &list, nil
}

// Quote resolves the unit price for qty. A failed tier lookup degrades to the
// base price instead of failing the request.
func (s *service) Quote(ctx context.Context, productID uuid.UUID, qty int) (*QuoteDTO, error) {
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	tierSet, degraded := s.tiersFor(ctx, product, "quote")
	result := pricing.CalculatePriceByQuantity(product.Price, tierSet, qty)
	total := result.LineTotal(qty)

	quote := &QuoteDTO{
		Quantity:           qty,
		UnitPrice:          result.Price,
		OriginalPrice:      result.OriginalPrice,
		LineTotal:          total,
		Savings:            result.Savings,
		DiscountPercentage: result.DiscountPercentage,
		FormattedUnitPrice: pricing.FormatPrice(result.Price),
		FormattedTotal:     pricing.FormatPrice(total),
		TierListDTO:        newTierListDTO(product, tierSet, degraded),
	}
	if result.Tier != nil {
		applied := newTierDTO(*result.Tier, product.Price)
		quote.AppliedTier = &applied
	}
	return quote, nil
}

func (s *service) loadProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return product, nil
}

// tiersFor returns the product's tiers, or none when the product is not
// tiered. The second value reports a lookup failure.
func (s *service) tiersFor(ctx context.Context, product *models.Product, op string) ([]models.PriceTier, bool) {
	if !pricing.HasPriceTiers(product) {
		return nil, false
	}
	tierSet, err := s.tiers.TiersForProduct(ctx, product.ID)
	if err != nil {
		ctx = s.logg.WithProductID(ctx, product.ID.String())
		s.logg.Error(s.logg.WithField(ctx, "op", op), "pricing.tier_lookup_failed", err)
		s.metrics.IncFallback(op)
		return nil, true
	}
	return tierSet, false
}

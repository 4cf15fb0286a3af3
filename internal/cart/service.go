package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/yukselticaret/trendyshop-backend/internal/pricing"
	"github.com/yukselticaret/trendyshop-backend/internal/tiers"
	"github.com/yukselticaret/trendyshop-backend/pkg/db"
	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
	pkgerrors "github.com/yukselticaret/trendyshop-backend/pkg/errors"
	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
	"github.com/yukselticaret/trendyshop-backend/pkg/metrics"
	"github.com/yukselticaret/trendyshop-backend/pkg/notify"
)

// Service manages a user's cart. Tier pricing is resolved once when a line
// is added and again only when RecalculateCartPrices is called; quantity
// updates never trigger a tier lookup.
type Service interface {
	AddToCart(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartView, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) (*CartView, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartView, error)
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)
	RecalculateCartPrices(ctx context.Context, userID uuid.UUID) (*RecalculateResult, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

const (
	opAddToCart   = "add_to_cart"
	opRecalculate = "recalculate"
)

const (
	msgAdded        = "Ürün sepete eklendi"
	msgAddFailed    = "Ürün sepete eklenemedi"
	msgRemoved      = "Ürün sepetten çıkarıldı"
	msgRecalculated = "Sepet fiyatları güncellendi"
	msgRecalcFailed = "Bazı ürünlerin fiyatı güncellenemedi"
	msgCleared      = "Sepet temizlendi"
)

// Options tunes cart limits.
type Options struct {
	MaxQuantity int
}

type service struct {
	repo     ItemRepository
	products productReader
	tiers    tiers.Reader
	notifier notify.Notifier
	metrics  *metrics.PricingMetrics
	logg     *logger.Logger
	maxQty   int
}

// NewService constructs the cart service.
func NewService(repo ItemRepository, products productReader, tierReader tiers.Reader, notifier notify.Notifier, m *metrics.PricingMetrics, logg *logger.Logger, opts Options) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if tierReader == nil {
		return nil, fmt.Errorf("tier reader required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		products: products,
		tiers:    tierReader,
		notifier: notifier,
		metrics:  m,
		logg:     logg,
		maxQty:   opts.MaxQuantity,
	}, nil
}

func (s *service) AddToCart(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartView, error) {
	ctx = s.logg.WithProductID(s.logg.WithUserID(ctx, userID.String()), productID.String())

	view, err := s.addToCart(ctx, userID, productID, qty)
	if err != nil {
		s.notifier.Error(ctx, msgAddFailed)
		return nil, err
	}
	s.notifier.Success(ctx, msgAdded)
	return view, nil
}

func (s *service) addToCart(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartView, error) {
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	existing, err := s.repo.FindByProduct(ctx, userID, productID)
	if err != nil && !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart line")
	}
	newQty := qty
	if existing != nil {
		newQty += existing.Quantity
	}
	if err := s.checkQuantity(newQty, product.StockQuantity); err != nil {
		return nil, err
	}

	applied := s.resolveAppliedPrice(ctx, product, newQty)

	if existing != nil {
		if err := s.repo.UpdateLine(ctx, existing.ID, newQty, applied); err != nil {
			return nil, pkgerrors.FromDB(err, "db: update cart line")
		}
	} else {
		item := &models.CartItem{
			UserID:       userID,
			ProductID:    productID,
			Quantity:     newQty,
			AppliedPrice: applied,
		}
		if err := s.repo.Create(ctx, item); err != nil {
			return nil, pkgerrors.FromDB(err, "db: insert cart line")
		}
	}

	return s.GetCart(ctx, userID)
}

// resolveAppliedPrice snapshots the tier price for a tiered product. Lookup
// failures are logged and yield nil so the line falls back to the base price.
func (s *service) resolveAppliedPrice(ctx context.Context, product *models.Product, qty int) *decimal.Decimal {
	if !pricing.HasPriceTiers(product) {
		return nil
	}
	tierSet, err := s.tiers.TiersForProduct(ctx, product.ID)
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "op", opAddToCart), "cart.tier_lookup_failed", err)
		s.metrics.IncFallback(opAddToCart)
		return nil
	}
	price := pricing.CalculatePriceByQuantity(product.Price, tierSet, qty).Price
	return &price
}

func (s *service) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) (*CartView, error) {
	if qty <= 0 {
		return s.RemoveItem(ctx, userID, itemID)
	}

	item, err := s.repo.FindByID(ctx, userID, itemID)
	if err != nil {
		return nil, itemLookupError(err)
	}
	stock := 0
	if item.Product != nil {
		stock = item.Product.StockQuantity
	}
	if err := s.checkQuantity(qty, stock); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateQuantity(ctx, item.ID, qty); err != nil {
		return nil, pkgerrors.FromDB(err, "db: update cart quantity")
	}
	return s.GetCart(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartView, error) {
	deleted, err := s.repo.Delete(ctx, userID, itemID)
	if err != nil {
		return nil, pkgerrors.FromDB(err, "db: delete cart line")
	}
	if deleted == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	s.notifier.Success(ctx, msgRemoved)
	return s.GetCart(ctx, userID)
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart")
	}
	return newCartView(s.liveLines(ctx, items)), nil
}

// RecalculateCartPrices refreshes applied_price on every line. A line keeps
// an applied price only while its tier price differs from the base price.
// Lines whose tiers cannot be loaded are left untouched.
func (s *service) RecalculateCartPrices(ctx context.Context, userID uuid.UUID) (*RecalculateResult, error) {
	ctx = s.logg.WithUserID(ctx, userID.String())

	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.notifier.Error(ctx, msgRecalcFailed)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart")
	}

	result := &RecalculateResult{}
	var errs error
	for i := range items {
		item := &items[i]
		if item.Product == nil {
			continue
		}
		result.Checked++

		want, err := s.targetPrice(ctx, item)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %s: %w", item.ID, err))
			result.Failed++
			s.metrics.IncFallback(opRecalculate)
			s.metrics.IncRecalculated(metrics.OutcomeFailed)
			continue
		}
		if samePrice(item.AppliedPrice, want) {
			s.metrics.IncRecalculated(metrics.OutcomeUnchanged)
			continue
		}
		if err := s.repo.SetAppliedPrice(ctx, item.ID, want); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %s: %w", item.ID, err))
			result.Failed++
			s.metrics.IncRecalculated(metrics.OutcomeFailed)
			continue
		}
		item.AppliedPrice = want
		result.Updated++
		s.metrics.IncRecalculated(metrics.OutcomeUpdated)
	}

	if errs != nil {
		ctx = s.logg.WithField(ctx, "failed_lines", result.Failed)
		s.logg.Error(ctx, "cart.recalculate.partial_failure", errs)
		s.notifier.Error(ctx, msgRecalcFailed)
	}
	if result.Updated > 0 {
		s.notifier.Success(ctx, msgRecalculated)
	}

	result.Cart = newCartView(s.liveLines(ctx, items))
	return result, nil
}

// targetPrice is the applied price a line should carry now: the tier price
// when it differs from base, otherwise nil.
func (s *service) targetPrice(ctx context.Context, item *models.CartItem) (*decimal.Decimal, error) {
	product := item.Product
	if !pricing.HasPriceTiers(product) {
		return nil, nil
	}
	tierSet, err := s.tiers.TiersForProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	price := pricing.CalculatePriceByQuantity(product.Price, tierSet, item.Quantity).Price
	if price.Equal(product.Price) {
		return nil, nil
	}
	return &price, nil
}

func (s *service) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return pkgerrors.FromDB(err, "db: clear cart")
	}
	s.notifier.Success(ctx, msgCleared)
	return nil
}

func (s *service) checkQuantity(qty, stock int) error {
	if s.maxQty > 0 && qty > s.maxQty {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity cannot exceed %d", s.maxQty))
	}
	check := pricing.ValidateQuantity(qty, stock)
	if check.IsValid {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, check.Errors[0]).WithDetails(map[string]any{
		"errors": check.Errors,
	})
}

// liveLines drops lines whose product no longer exists.
func (s *service) liveLines(ctx context.Context, items []models.CartItem) []models.CartItem {
	live := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			s.logg.Warn(s.logg.WithField(ctx, "cart_item_id", item.ID.String()), "cart.line_without_product")
			continue
		}
		live = append(live, item)
	}
	return live
}

func samePrice(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func itemLookupError(err error) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart line")
}

package tiers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/yukselticaret/trendyshop-backend/internal/pricing"
	"github.com/yukselticaret/trendyshop-backend/pkg/db"
	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
	pkgerrors "github.com/yukselticaret/trendyshop-backend/pkg/errors"
	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
	"github.com/yukselticaret/trendyshop-backend/pkg/metrics"
	"github.com/yukselticaret/trendyshop-backend/pkg/notify"
)

// Service is the admin surface for a product's price tiers. Every write is
// gated by the validator and leaves has_price_tiers consistent.
type Service interface {
	ListTiers(ctx context.Context, productID uuid.UUID) ([]models.PriceTier, error)
	CreateTier(ctx context.Context, productID uuid.UUID, raw pricing.RawTierInput) (*WriteResult, error)
	UpdateTier(ctx context.Context, tierID uuid.UUID, raw pricing.RawTierInput) (*WriteResult, error)
	DeleteTier(ctx context.Context, tierID uuid.UUID) (*WriteResult, error)
	ReplaceTiers(ctx context.Context, productID uuid.UUID, raws []pricing.RawTierInput) (*WriteResult, error)
	ValidateTiers(raws []pricing.RawTierInput) pricing.ValidationResult
}

// WriteResult is the product's tier set after a write, with any advisory
// warnings the new set produces.
type WriteResult struct {
	Tier          *models.PriceTier  `json:"tier,omitempty"`
	Tiers         []models.PriceTier `json:"tiers"`
	HasPriceTiers bool               `json:"has_price_tiers"`
	Warnings      []string           `json:"warnings"`
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, productID uuid.UUID) error
}

const (
	rejectFields  = "fields"
	rejectOverlap = "overlap"
	rejectSet     = "set"
)

type service struct {
	repo     *Repository
	tx       txRunner
	cache    cacheInvalidator
	notifier notify.Notifier
	metrics  *metrics.PricingMetrics
	logg     *logger.Logger
}

// NewService constructs the tier service. cache may be nil when the tier
// cache is disabled.
func NewService(repo *Repository, tx txRunner, cache cacheInvalidator, notifier notify.Notifier, m *metrics.PricingMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tier repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		cache:    cache,
		notifier: notifier,
		metrics:  m,
		logg:     logg,
	}, nil
}

func (s *service) ListTiers(ctx context.Context, productID uuid.UUID) ([]models.PriceTier, error) {
	if _, err := s.repo.FindProduct(ctx, productID); err != nil {
		return nil, productLookupError(err)
	}
	tiers, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list price tiers")
	}
	return tiers, nil
}

func (s *service) CreateTier(ctx context.Context, productID uuid.UUID, raw pricing.RawTierInput) (*WriteResult, error) {
	tier := pricing.SanitizeTierData(raw)
	tier.ProductID = productID
	if err := s.checkFields(tier); err != nil {
		return nil, err
	}

	var result *WriteResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindProduct(ctx, productID); err != nil {
			return productLookupError(err)
		}
		existing, err := repo.ListByProduct(ctx, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list price tiers")
		}
		if err := s.checkOverlap(tier, existing); err != nil {
			return err
		}
		if err := repo.Create(ctx, &tier); err != nil {
			return pkgerrors.FromDB(err, "db: insert price tier")
		}
		result, err = s.finishWrite(ctx, repo, productID)
		return err
	})
	if err != nil {
		return nil, s.txError(err, "create price tier")
	}

	result.Tier = &tier
	s.afterWrite(ctx, productID, "Fiyat kademesi eklendi", result)
	return result, nil
}

func (s *service) UpdateTier(ctx context.Context, tierID uuid.UUID, raw pricing.RawTierInput) (*WriteResult, error) {
	current, err := s.repo.FindByID(ctx, tierID)
	if err != nil {
		return nil, tierLookupError(err)
	}

	tier := pricing.SanitizeTierData(raw)
	tier.ID = current.ID
	tier.ProductID = current.ProductID
	tier.CreatedAt = current.CreatedAt
	if err := s.checkFields(tier); err != nil {
		return nil, err
	}

	var result *WriteResult
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.ListByProduct(ctx, tier.ProductID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list price tiers")
		}
		if err := s.checkOverlap(tier, existing); err != nil {
			return err
		}
		if err := repo.Update(ctx, &tier); err != nil {
			return pkgerrors.FromDB(err, "db: update price tier")
		}
		result, err = s.finishWrite(ctx, repo, tier.ProductID)
		return err
	})
	if err != nil {
		return nil, s.txError(err, "update price tier")
	}

	result.Tier = &tier
	s.afterWrite(ctx, tier.ProductID, "Fiyat kademesi güncellendi", result)
	return result, nil
}

func (s *service) DeleteTier(ctx context.Context, tierID uuid.UUID) (*WriteResult, error) {
	current, err := s.repo.FindByID(ctx, tierID)
	if err != nil {
		return nil, tierLookupError(err)
	}

	var result *WriteResult
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Delete(ctx, current.ID); err != nil {
			return pkgerrors.FromDB(err, "db: delete price tier")
		}
		var err error
		result, err = s.finishWrite(ctx, repo, current.ProductID)
		return err
	})
	if err != nil {
		return nil, s.txError(err, "delete price tier")
	}

	s.afterWrite(ctx, current.ProductID, "Fiyat kademesi silindi", result)
	return result, nil
}

func (s *service) ReplaceTiers(ctx context.Context, productID uuid.UUID, raws []pricing.RawTierInput) (*WriteResult, error) {
	tiers := sanitizeAll(raws)
	validation := pricing.ValidatePriceTiers(tiers)
	if !validation.IsValid {
		s.metrics.IncRejection(rejectSet)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price tiers are invalid").WithDetails(map[string]any{
			"errors":   validation.Errors,
			"warnings": validation.Warnings,
		})
	}

	var result *WriteResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindProduct(ctx, productID); err != nil {
			return productLookupError(err)
		}
		if err := repo.ReplaceForProduct(ctx, productID, tiers); err != nil {
			return pkgerrors.FromDB(err, "db: replace price tiers")
		}
		var err error
		result, err = s.finishWrite(ctx, repo, productID)
		return err
	})
	if err != nil {
		return nil, s.txError(err, "replace price tiers")
	}

	s.afterWrite(ctx, productID, "Fiyat kademeleri kaydedildi", result)
	return result, nil
}

// ValidateTiers is a dry run of ReplaceTiers' validation.
func (s *service) ValidateTiers(raws []pricing.RawTierInput) pricing.ValidationResult {
	return pricing.ValidatePriceTiers(sanitizeAll(raws))
}

func (s *service) checkFields(tier models.PriceTier) error {
	check := pricing.ValidateSingleTier(tier)
	if check.IsValid {
		return nil
	}
	s.metrics.IncRejection(rejectFields)
	return pkgerrors.New(pkgerrors.CodeValidation, "price tier is invalid").WithDetails(map[string]any{
		"errors": check.Errors,
	})
}

func (s *service) checkOverlap(tier models.PriceTier, existing []models.PriceTier) error {
	overlap := pricing.CheckTierOverlap(tier, existing)
	if !overlap.HasOverlap {
		return nil
	}
	s.metrics.IncRejection(rejectOverlap)
	conflicting := lo.Map(overlap.ConflictingTiers, func(t models.PriceTier, _ int) uuid.UUID { return t.ID })
	return pkgerrors.New(pkgerrors.CodeTierOverlap, "price tier overlaps an existing tier").WithDetails(map[string]any{
		"errors":            overlap.Errors,
		"conflicting_tiers": conflicting,
	})
}

// finishWrite syncs the product flag and reloads the set inside the write
// transaction.
func (s *service) finishWrite(ctx context.Context, repo *Repository, productID uuid.UUID) (*WriteResult, error) {
	hasTiers, err := repo.SyncProductFlag(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: sync has_price_tiers")
	}
	tiers, err := repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list price tiers")
	}
	if tiers == nil {
		tiers = []models.PriceTier{}
	}
	return &WriteResult{
		Tiers:         tiers,
		HasPriceTiers: hasTiers,
		Warnings:      pricing.ValidatePriceTiers(tiers).Warnings,
	}, nil
}

func (s *service) afterWrite(ctx context.Context, productID uuid.UUID, msg string, result *WriteResult) {
	ctx = s.logg.WithProductID(ctx, productID.String())
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, productID); err != nil {
			s.logg.Error(ctx, "tiers.cache.invalidate_failed", err)
		}
	}
	s.notifier.Success(ctx, msg)
	for _, warning := range result.Warnings {
		s.notifier.Info(ctx, warning)
	}
	s.logg.Info(s.logg.WithField(ctx, "tier_count", len(result.Tiers)), "tiers.write")
}

func (s *service) txError(err error, msg string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}

func sanitizeAll(raws []pricing.RawTierInput) []models.PriceTier {
	return lo.Map(raws, func(raw pricing.RawTierInput, _ int) models.PriceTier { return pricing.SanitizeTierData(raw) })
}

func productLookupError(err error) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
}

func tierLookupError(err error) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "price tier not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load price tier")
}

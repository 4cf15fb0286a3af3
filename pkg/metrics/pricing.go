package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "trendyshop"

// Tier lookup sources and results.
const (
	SourceCache = "cache"
	SourceDB    = "db"

	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"
)

// Recalculation outcomes per cart line.
const (
	OutcomeUpdated   = "updated"
	OutcomeUnchanged = "unchanged"
	OutcomeFailed    = "failed"
)

// PricingMetrics records tier lookups and cart price propagation. A nil
// *PricingMetrics is valid and records nothing.
type PricingMetrics struct {
	lookups      *prometheus.CounterVec
	lookupTime   *prometheus.HistogramVec
	fallbacks    *prometheus.CounterVec
	recalculated *prometheus.CounterVec
	rejections   *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tier_lookups_total",
		Help:      "Price tier lookups by source and result.",
	}, []string{"source", "result"})
	lookupTime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tier_lookup_duration_seconds",
		Help:      "Duration of price tier lookups in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_fallbacks_total",
		Help:      "Operations that fell back to the base price after a tier lookup failure.",
	}, []string{"op"})
	recalculated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_lines_recalculated_total",
		Help:      "Cart lines visited by price recalculation, by outcome.",
	}, []string{"outcome"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tier_validation_rejections_total",
		Help:      "Tier writes rejected by validation, by reason.",
	}, []string{"reason"})
	reg.MustRegister(lookups, lookupTime, fallbacks, recalculated, rejections)
	return &PricingMetrics{
		lookups:      lookups,
		lookupTime:   lookupTime,
		fallbacks:    fallbacks,
		recalculated: recalculated,
		rejections:   rejections,
	}
}

// ObserveLookup records one tier lookup against source.
func (m *PricingMetrics) ObserveLookup(source, result string, duration time.Duration) {
	if m == nil || m.lookups == nil {
		return
	}
	source = normalizeLabel(source)
	m.lookups.WithLabelValues(source, normalizeLabel(result)).Inc()
	m.lookupTime.WithLabelValues(source).Observe(duration.Seconds())
}

// IncFallback counts an operation that used the base price because tiers
// could not be loaded.
func (m *PricingMetrics) IncFallback(op string) {
	if m == nil || m.fallbacks == nil {
		return
	}
	m.fallbacks.WithLabelValues(normalizeLabel(op)).Inc()
}

func (m *PricingMetrics) IncRecalculated(outcome string) {
	if m == nil || m.recalculated == nil {
		return
	}
	m.recalculated.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *PricingMetrics) IncRejection(reason string) {
	if m == nil || m.rejections == nil {
		return
	}
	m.rejections.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

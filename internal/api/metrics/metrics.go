// Package metrics defines the custom Prometheus metrics of the review API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto and exposed by the router at /metrics.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cafecritique/review-api/internal/core/ports"
)

const namespace = "cafecritique"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts created accounts.
// Label:
//   - user_type: "blogger", "restaurateur" or "user"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by user type.",
	},
	[]string{"user_type"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Review metrics ────────────────────────────────────────────────────────────

// UpsertsTotal counts reaction and rating submissions.
// Labels:
//   - entity: "reaction" or "rating"
//   - outcome: "created" or "updated"
var UpsertsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upserts_total",
		Help:      "Total number of reaction and rating upserts, by entity and outcome.",
	},
	[]string{"entity", "outcome"},
)

// ── Purge metrics ─────────────────────────────────────────────────────────────

// PurgesTotal counts blog purge jobs.
// Label:
//   - result: "success" or "error"
var PurgesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blog_purges_total",
		Help:      "Total number of blog purge jobs run, by result.",
	},
	[]string{"result"},
)

// PurgeDuration measures how long removing a blog's comments and reactions takes.
var PurgeDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "blog_purge_duration_seconds",
		Help:      "Duration of a blog purge job.",
		Buckets:   prometheus.DefBuckets,
	},
)

// Upserted records the outcome of a reaction or rating upsert.
func Upserted(entity string, created bool) {
	outcome := "updated"
	if created {
		outcome = "created"
	}
	UpsertsTotal.WithLabelValues(entity, outcome).Inc()
}

// InstrumentPurge wraps a PurgeService with the purge counters.
func InstrumentPurge(next ports.PurgeService) ports.PurgeService {
	return instrumentedPurge{next: next}
}

type instrumentedPurge struct {
	next ports.PurgeService
}

func (p instrumentedPurge) PurgeBlog(ctx context.Context, blogID string) error {
	start := time.Now()
	err := p.next.PurgeBlog(ctx, blogID)
	PurgeDuration.Observe(time.Since(start).Seconds())

	result := "success"
	if err != nil {
		result = "error"
	}
	PurgesTotal.WithLabelValues(result).Inc()
	return err
}

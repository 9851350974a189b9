// Package reporting derives operator-facing metrics from the consent and
// activity collections. It never writes: the lifecycle engine is the only
// writer, and every aggregate here is recomputed from snapshots on read.
package reporting

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"consentry/internal/activity"
	"consentry/internal/catalog"
	"consentry/internal/consent/models"
	"consentry/internal/platform/middleware"
	id "consentry/pkg/domain"
	dErrors "consentry/pkg/domain-errors"
	"consentry/pkg/timeutil"
)

// ConsentSource is the read side of the consent collection.
type ConsentSource interface {
	List(ctx context.Context) ([]*models.Consent, error)
}

// ActivitySource is the read side of the activity log.
type ActivitySource interface {
	ListAll(ctx context.Context) ([]activity.Entry, error)
}

// Service computes derived metrics. All time-sensitive reads use effective
// status at the request clock, so a consent past its expiry counts as expired
// here even while its stored status still reads active.
type Service struct {
	consents   ConsentSource
	activities ActivitySource
	providers  *catalog.ProviderDirectory
	logger     *slog.Logger
}

func NewService(consents ConsentSource, activities ActivitySource, providers *catalog.ProviderDirectory, logger *slog.Logger) *Service {
	return &Service{
		consents:   consents,
		activities: activities,
		providers:  providers,
		logger:     logger,
	}
}

// CountByStatus returns the effective-status breakdown. All six statuses are
// present in the result and Total always equals their sum.
func (s *Service) CountByStatus(ctx context.Context) (StatusCounts, error) {
	consents, err := s.consents.List(ctx)
	if err != nil {
		return StatusCounts{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list consents")
	}

	now := middleware.Now(ctx)
	var counts StatusCounts
	for _, c := range consents {
		switch c.EffectiveStatus(now) {
		case models.StatusPending:
			counts.Pending++
		case models.StatusAuthorized:
			counts.Authorized++
		case models.StatusActive:
			counts.Active++
		case models.StatusExpired:
			counts.Expired++
		case models.StatusRevoked:
			counts.Revoked++
		case models.StatusRejected:
			counts.Rejected++
		}
		counts.Total++
	}
	return counts, nil
}

// ActiveConsents returns the consents that are effectively active now.
func (s *Service) ActiveConsents(ctx context.Context) ([]*models.Consent, error) {
	consents, err := s.consents.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list consents")
	}
	now := middleware.Now(ctx)
	var out []*models.Consent
	for _, c := range consents {
		if c.EffectiveStatus(now) == models.StatusActive {
			out = append(out, c)
		}
	}
	return out, nil
}

// ExpiringSoon returns the active consents whose expiry falls inside the
// window. Items already past due are excluded even when their stored status
// still reads active.
func (s *Service) ExpiringSoon(ctx context.Context, windowDays int) ([]*models.Consent, error) {
	consents, err := s.consents.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list consents")
	}
	now := middleware.Now(ctx)
	var out []*models.Consent
	for _, c := range consents {
		if c.IsExpiringSoon(now, windowDays) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ProviderMetrics aggregates the portfolio per provider. Providers with zero
// consents are excluded entirely rather than emitted with zero rates. Output
// is ordered by active count descending; ties break by total count descending
// then provider id ascending so the result is deterministic.
func (s *Service) ProviderMetrics(ctx context.Context) ([]ProviderMetrics, error) {
	consents, err := s.consents.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list consents")
	}

	now := middleware.Now(ctx)
	grouped := make(map[id.ProviderID][]*models.Consent)
	for _, c := range consents {
		grouped[c.ProviderID] = append(grouped[c.ProviderID], c)
	}

	out := make([]ProviderMetrics, 0, len(grouped))
	for providerID, group := range grouped {
		m := ProviderMetrics{
			ProviderID: providerID,
			TotalCount: len(group),
		}
		if p, ok := s.providers.ByID(providerID); ok {
			m.ProviderName = p.Name
		}

		revoked := 0
		var durationDaysSum float64
		for _, c := range group {
			switch c.EffectiveStatus(now) {
			case models.StatusActive:
				m.ActiveCount++
			case models.StatusRevoked:
				revoked++
			}
			durationDaysSum += consentDurationDays(c, now)
			if last := c.LastActivityAt(); last.After(m.LastActivity) {
				m.LastActivity = last
			}
		}

		m.RevocationRate = float64(revoked) / float64(m.TotalCount) * 100
		m.AvgConsentDuration = durationDaysSum / float64(m.TotalCount)
		m.RiskScore = scoreRisk(m.RevocationRate)
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ActiveCount != out[j].ActiveCount {
			return out[i].ActiveCount > out[j].ActiveCount
		}
		if out[i].TotalCount != out[j].TotalCount {
			return out[i].TotalCount > out[j].TotalCount
		}
		return out[i].ProviderID < out[j].ProviderID
	})
	return out, nil
}

// Funnel returns the static authorization funnel snapshot.
func (s *Service) Funnel(ctx context.Context) []FunnelStage {
	return DefaultFunnel()
}

// TrendData buckets lifecycle events from the activity log into per-day
// counts for the trailing window, oldest day first. Days without events are
// emitted with zero counts, and the same log always yields the same series.
func (s *Service) TrendData(ctx context.Context, days int) ([]TrendPoint, error) {
	if days <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "trend window must be positive")
	}
	entries, err := s.activities.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read activity log")
	}

	now := middleware.Now(ctx)
	end := now.UTC().Truncate(timeutil.Day)
	start := end.Add(-time.Duration(days-1) * timeutil.Day)

	byDate := make(map[string]*TrendPoint, days)
	series := make([]TrendPoint, days)
	for i := 0; i < days; i++ {
		date := start.Add(time.Duration(i) * timeutil.Day).Format("2006-01-02")
		series[i] = TrendPoint{Date: date}
		byDate[date] = &series[i]
	}

	for _, e := range entries {
		point, ok := byDate[e.Timestamp.UTC().Format("2006-01-02")]
		if !ok {
			continue
		}
		switch e.Action {
		case activity.ActionCreated, activity.ActionAuthorized:
			point.Created++
		case activity.ActionRevoked:
			point.Revoked++
		case activity.ActionExpired:
			point.Expired++
		}
	}
	return series, nil
}

// consentDurationDays measures how long a consent has lived or will live: the
// span from creation to revocation for revoked consents, to expiry for
// already-expired ones, and to now for consents still running.
func consentDurationDays(c *models.Consent, now time.Time) float64 {
	end := now
	if c.RevokedAt != nil {
		end = *c.RevokedAt
	} else if c.ExpiresAt.Before(now) {
		end = c.ExpiresAt
	}
	if end.Before(c.CreatedAt) {
		return 0
	}
	return end.Sub(c.CreatedAt).Hours() / 24
}

// scoreRisk classifies a revocation rate. Boundary values fall into the lower
// bucket: exactly 10% is medium, exactly 5% is low.
func scoreRisk(revocationRate float64) catalog.RiskLevel {
	switch {
	case revocationRate > 10:
		return catalog.RiskHigh
	case revocationRate > 5:
		return catalog.RiskMedium
	default:
		return catalog.RiskLow
	}
}

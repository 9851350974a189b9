package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"consentry/internal/activity"
	"consentry/internal/catalog"
	"consentry/internal/consent/metrics"
	"consentry/internal/consent/models"
	"consentry/internal/platform/middleware"
	"consentry/internal/platform/tracer"
	"consentry/internal/sentinel"
	id "consentry/pkg/domain"
	dErrors "consentry/pkg/domain-errors"
	"consentry/pkg/timeutil"
)

// Store defines the persistence interface for the consent collection.
// Error Contract:
// - FindByID returns sentinel.ErrNotFound when no record exists
// - Other methods return nil on success or wrapped errors on failure
type Store interface {
	Save(ctx context.Context, consent *models.Consent) error
	FindByID(ctx context.Context, consentID id.ConsentID) (*models.Consent, error)
	List(ctx context.Context) ([]*models.Consent, error)
	Update(ctx context.Context, consent *models.Consent) error
}

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

// Option configures the Service.
type Option func(*Service)

const defaultConsentTTL = 90 * 24 * time.Hour

// Service owns the consent lifecycle state machine. It is the only writer of
// the consent collection; every mutation appends a correlated activity entry.
//
// The engine never reads a hidden clock: "now" always comes from the request
// context (requesttime middleware in production, pinned times in tests), so
// all time-derived states within one request agree.
type Service struct {
	store     Store
	providers *catalog.ProviderDirectory
	accounts  *catalog.AccountDirectory
	recorder  *activity.Recorder
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    tracer.Tracer
	ttl       time.Duration
}

func NewService(store Store, providers *catalog.ProviderDirectory, accounts *catalog.AccountDirectory, recorder *activity.Recorder, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:     store,
		providers: providers,
		accounts:  accounts,
		recorder:  recorder,
		logger:    logger,
		tracer:    tracer.NewNoop(),
		ttl:       defaultConsentTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.ttl <= 0 {
		svc.ttl = defaultConsentTTL
	}
	return svc
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer sets the tracer used to span lifecycle operations.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithConsentTTL configures how long a new or renewed consent remains valid.
// If not set or set to zero/negative, defaults to 90 days.
func WithConsentTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// ttlDays is used in audit details so the trail reads naturally.
func (s *Service) ttlDays() int {
	return int(s.ttl / timeutil.Day)
}

// Authorize creates a new active consent for the given provider, permission
// set and account references. There is no intermediate pending hold: the
// simulated authentication step completes before this is called, so the
// consent is active and visible to all queries immediately.
func (s *Service) Authorize(ctx context.Context, userID id.UserID, providerID id.ProviderID, permissions []catalog.Permission, accountIDs []id.AccountID) (*models.Consent, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanConsentAuthorize,
		tracer.String(tracer.AttrProviderID, providerID.String()),
		tracer.Int64(tracer.AttrPermissions, int64(len(permissions))),
		tracer.Int64(tracer.AttrAccounts, int64(len(accountIDs))),
	)
	defer s.observeLatency("authorize", time.Now())
	var err error
	defer func() { span.End(err) }()

	if userID.IsNil() {
		err = dErrors.New(dErrors.CodeInvalidInput, "user ID required")
		return nil, err
	}
	if len(permissions) == 0 {
		err = dErrors.New(dErrors.CodeInvalidInput, "permissions must not be empty")
		return nil, err
	}
	if len(accountIDs) == 0 {
		err = dErrors.New(dErrors.CodeInvalidInput, "account references must not be empty")
		return nil, err
	}
	for _, p := range permissions {
		if !p.IsValid() {
			err = dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown permission: %s", p))
			return nil, err
		}
	}
	if _, ok := s.providers.ByID(providerID); !ok {
		err = dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("unknown provider: %s", providerID))
		return nil, err
	}
	for _, aid := range accountIDs {
		if _, ok := s.accounts.ByID(aid); !ok {
			err = dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("unknown account: %s", aid))
			return nil, err
		}
	}

	now := middleware.Now(ctx)
	consent, cErr := models.New(id.NewConsentID(), providerID, userID, permissions, accountIDs, now, s.ttl)
	if cErr != nil {
		err = cErr
		return nil, err
	}
	if sErr := s.store.Save(ctx, consent); sErr != nil {
		err = dErrors.Wrap(sErr, dErrors.CodeInternal, "failed to save consent")
		return nil, err
	}

	s.record(ctx, activity.Entry{
		ConsentID:  consent.ID,
		ProviderID: consent.ProviderID,
		Action:     activity.ActionAuthorized,
		Timestamp:  now,
		Details:    "User authorized new consent",
	})
	s.incrementAuthorized(providerID)
	s.incrementActive(1)
	s.logOperation(ctx, "consent_authorized", consent.ID, providerID)
	return consent, nil
}

// Revoke terminally revokes a consent. Revocation is idempotent-safe: a
// consent already in a terminal state is refused rather than re-stamped, so
// RevokedAt is set exactly once and the audit trail never carries duplicate
// revocation entries.
func (s *Service) Revoke(ctx context.Context, consentID id.ConsentID) error {
	ctx, span := s.tracer.Start(ctx, tracer.SpanConsentRevoke,
		tracer.String(tracer.AttrConsentID, consentID.String()),
	)
	defer s.observeLatency("revoke", time.Now())
	var err error
	defer func() { span.End(err) }()

	consent, fErr := s.find(ctx, consentID)
	if fErr != nil {
		err = fErr
		return err
	}
	if consent.IsTerminal() {
		err = dErrors.New(dErrors.CodeConflict, fmt.Sprintf("consent already %s", consent.Status))
		return err
	}

	now := middleware.Now(ctx)
	wasActive := consent.EffectiveStatus(now) == models.StatusActive

	consent.Status = models.StatusRevoked
	consent.RevokedAt = &now
	if uErr := s.store.Update(ctx, consent); uErr != nil {
		err = dErrors.Wrap(uErr, dErrors.CodeInternal, "failed to revoke consent")
		return err
	}

	s.record(ctx, activity.Entry{
		ConsentID:  consent.ID,
		ProviderID: consent.ProviderID,
		Action:     activity.ActionRevoked,
		Timestamp:  now,
		Details:    "User revoked consent",
	})
	s.incrementRevoked(consent.ProviderID)
	if wasActive {
		s.decrementActive(1)
	}
	s.logOperation(ctx, "consent_revoked", consent.ID, consent.ProviderID)
	return nil
}

// Renew extends a consent for another full TTL from now and restores it to
// active. Renewal applies to active and time-expired consents only; terminal
// consents (revoked, rejected) are never resurrected.
func (s *Service) Renew(ctx context.Context, consentID id.ConsentID) error {
	ctx, span := s.tracer.Start(ctx, tracer.SpanConsentRenew,
		tracer.String(tracer.AttrConsentID, consentID.String()),
	)
	defer s.observeLatency("renew", time.Now())
	var err error
	defer func() { span.End(err) }()

	consent, fErr := s.find(ctx, consentID)
	if fErr != nil {
		err = fErr
		return err
	}
	if consent.IsTerminal() {
		err = dErrors.New(dErrors.CodeConflict, fmt.Sprintf("cannot renew a %s consent", consent.Status))
		return err
	}

	now := middleware.Now(ctx)
	wasActive := consent.EffectiveStatus(now) == models.StatusActive

	consent.Status = models.StatusActive
	consent.ExpiresAt = now.Add(s.ttl)
	if uErr := s.store.Update(ctx, consent); uErr != nil {
		err = dErrors.Wrap(uErr, dErrors.CodeInternal, "failed to renew consent")
		return err
	}

	s.record(ctx, activity.Entry{
		ConsentID:  consent.ID,
		ProviderID: consent.ProviderID,
		Action:     activity.ActionRenewed,
		Timestamp:  now,
		Details:    fmt.Sprintf("User renewed consent for %d days", s.ttlDays()),
	})
	s.incrementRenewed(consent.ProviderID)
	if !wasActive {
		s.incrementActive(1)
	}
	s.logOperation(ctx, "consent_renewed", consent.ID, consent.ProviderID)
	return nil
}

// RecordAccess registers one data access performed under a consent. Only an
// effectively active consent can be exercised.
func (s *Service) RecordAccess(ctx context.Context, consentID id.ConsentID, endpoint, details string) error {
	ctx, span := s.tracer.Start(ctx, tracer.SpanConsentAccess,
		tracer.String(tracer.AttrConsentID, consentID.String()),
	)
	defer s.observeLatency("record_access", time.Now())
	var err error
	defer func() { span.End(err) }()

	consent, fErr := s.find(ctx, consentID)
	if fErr != nil {
		err = fErr
		return err
	}

	now := middleware.Now(ctx)
	if status := consent.EffectiveStatus(now); status != models.StatusActive {
		err = dErrors.New(dErrors.CodeConflict, fmt.Sprintf("cannot access a %s consent", status))
		return err
	}

	consent.AccessCount++
	consent.LastAccessedAt = &now
	if uErr := s.store.Update(ctx, consent); uErr != nil {
		err = dErrors.Wrap(uErr, dErrors.CodeInternal, "failed to record access")
		return err
	}

	s.record(ctx, activity.Entry{
		ConsentID:  consent.ID,
		ProviderID: consent.ProviderID,
		Action:     activity.ActionAccessed,
		Timestamp:  now,
		Details:    details,
		Endpoint:   endpoint,
	})
	s.incrementAccess(consent.ProviderID)
	return nil
}

// GetByID returns a snapshot of one consent.
func (s *Service) GetByID(ctx context.Context, consentID id.ConsentID) (*models.Consent, error) {
	return s.find(ctx, consentID)
}

// List returns consent snapshots, optionally narrowed by provider and
// effective status. Order is newest-first, matching the store.
func (s *Service) List(ctx context.Context, filter *models.Filter) ([]*models.Consent, error) {
	consents, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list consents")
	}
	if filter == nil {
		return consents, nil
	}

	now := middleware.Now(ctx)
	var out []*models.Consent
	for _, c := range consents {
		if filter.ProviderID != nil && c.ProviderID != *filter.ProviderID {
			continue
		}
		if filter.Status != nil && c.EffectiveStatus(now) != *filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// ListActive returns the consents that are effectively active now.
func (s *Service) ListActive(ctx context.Context) ([]*models.Consent, error) {
	status := models.StatusActive
	return s.List(ctx, &models.Filter{Status: &status})
}

// ListByProvider returns one provider's consents regardless of status.
func (s *Service) ListByProvider(ctx context.Context, providerID id.ProviderID) ([]*models.Consent, error) {
	return s.List(ctx, &models.Filter{ProviderID: &providerID})
}

// ListExpiringSoon returns the active consents expiring inside the window,
// excluding anything already past due even when its stored status lags.
func (s *Service) ListExpiringSoon(ctx context.Context, windowDays int) ([]*models.Consent, error) {
	consents, err := s.store.List(ctx)
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

// ActivityFor returns the audit trail for one consent, newest entry first.
func (s *Service) ActivityFor(ctx context.Context, consentID id.ConsentID) ([]activity.Entry, error) {
	if _, err := s.find(ctx, consentID); err != nil {
		return nil, err
	}
	entries, err := s.recorder.ListByConsent(ctx, consentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read activity log")
	}
	return entries, nil
}

// find translates the store's not-found sentinel into a domain error exactly once.
func (s *Service) find(ctx context.Context, consentID id.ConsentID) (*models.Consent, error) {
	if consentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "consent ID required")
	}
	consent, err := s.store.FindByID(ctx, consentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("consent not found: %s", consentID))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read consent")
	}
	return consent, nil
}

func (s *Service) record(ctx context.Context, entry activity.Entry) {
	if s.recorder == nil {
		return
	}
	entry.ID = id.NewLogID()
	if err := s.recorder.Record(ctx, entry); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to record activity entry",
			"error", err,
			"action", entry.Action,
			"consent_id", entry.ConsentID,
		)
	}
}

// observeLatency records the wall-clock duration of one lifecycle operation.
// Evaluated as a deferred call, so start is captured at operation entry and
// the observation happens on every return path, errors included.
func (s *Service) observeLatency(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperationLatency(operation, time.Since(start).Seconds())
	}
}

// incrementAuthorized increments the authorized counter if metrics are enabled.
func (s *Service) incrementAuthorized(provider id.ProviderID) {
	if s.metrics != nil {
		s.metrics.IncrementConsentsAuthorized(provider.String())
	}
}

// incrementRevoked increments the revoked counter if metrics are enabled.
func (s *Service) incrementRevoked(provider id.ProviderID) {
	if s.metrics != nil {
		s.metrics.IncrementConsentsRevoked(provider.String())
	}
}

// incrementRenewed increments the renewed counter if metrics are enabled.
func (s *Service) incrementRenewed(provider id.ProviderID) {
	if s.metrics != nil {
		s.metrics.IncrementConsentsRenewed(provider.String())
	}
}

// incrementAccess increments the access-event counter if metrics are enabled.
func (s *Service) incrementAccess(provider id.ProviderID) {
	if s.metrics != nil {
		s.metrics.IncrementAccessEvents(provider.String())
	}
}

// incrementActive updates the active consents gauge when it increases.
func (s *Service) incrementActive(count float64) {
	if s.metrics != nil {
		s.metrics.IncrementActiveConsents(count)
	}
}

// decrementActive updates the active consents gauge when it decreases.
func (s *Service) decrementActive(count float64) {
	if s.metrics != nil {
		s.metrics.DecrementActiveConsents(count)
	}
}

func (s *Service) logOperation(ctx context.Context, msg string, consentID id.ConsentID, provider id.ProviderID) {
	if s.logger == nil {
		return
	}
	s.logger.InfoContext(ctx, msg,
		"consent_id", consentID,
		"provider_id", provider,
	)
}

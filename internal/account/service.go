package account

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"geniemetrics/internal/domain"
	"geniemetrics/internal/entitlement"
)

// Options tunes the simulated flows.
type Options struct {
	AuthDelay    time.Duration
	PaymentDelay time.Duration
	SessionTTL   time.Duration
	Logger       zerolog.Logger
}

// Service is the single owner of account state. Every mutation goes through
// Store.Update so that each gate decision sees the latest balance.
type Service struct {
	store        Store
	authDelay    time.Duration
	paymentDelay time.Duration
	ttl          time.Duration
	logger       zerolog.Logger
	now          func() time.Time
}

// NewService builds the account service over store. A zero SessionTTL means 24h.
func NewService(store Store, opts Options) *Service {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		store:        store,
		authDelay:    opts.AuthDelay,
		paymentDelay: opts.PaymentDelay,
		ttl:          ttl,
		logger:       opts.Logger.With().Str("component", "account").Logger(),
		now:          time.Now,
	}
}

// Login signs a user in. Every login starts a fresh free account.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := wait(ctx, s.authDelay); err != nil {
		return nil, err
	}
	return s.open(ctx, domain.Profile{
		Name:  nameFromEmail(req.Email),
		Email: req.Email,
	})
}

// Signup is Login for a first-time user who accepted the terms.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*domain.Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := wait(ctx, s.authDelay); err != nil {
		return nil, err
	}
	name := req.Name
	if name == "" {
		name = nameFromEmail(req.Email)
	}
	return s.open(ctx, domain.Profile{
		Name:      name,
		Email:     req.Email,
		IsNewUser: true,
	})
}

func (s *Service) open(ctx context.Context, profile domain.Profile) (*domain.Session, error) {
	profile.ReferralCode = newReferralCode()
	now := s.now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Account:   entitlement.NewFreeAccount(profile),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info().Str("session", sess.ID).Bool("new_user", profile.IsNewUser).Msg("session opened")
	return sess, nil
}

// Logout discards the session and the account with it.
func (s *Service) Logout(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("session", id).Msg("session closed")
	return nil
}

func (s *Service) Session(ctx context.Context, id string) (*domain.Session, error) {
	return s.store.Get(ctx, id)
}

// Consume runs the entitlement gate against the session's account. A denial
// records the matching limit signal, replacing any earlier one.
func (s *Service) Consume(ctx context.Context, id string, req domain.ConsumptionRequest) (entitlement.Decision, error) {
	var decision entitlement.Decision
	_, err := s.store.Update(ctx, id, func(sess *domain.Session) error {
		decision = entitlement.Consume(sess.Account, req)
		sess.Account = decision.Account
		if decision.Limit != nil {
			sess.Limit = decision.Limit
		}
		return nil
	})
	if err != nil {
		return entitlement.Decision{}, err
	}
	if !decision.Authorized {
		s.logger.Debug().
			Str("session", id).
			Str("meter", string(req.Kind)).
			Int("amount", req.Amount).
			Msg("consumption denied")
	}
	return decision, nil
}

// Checkout simulates a payment and upgrades the account to Pro.
func (s *Service) Checkout(ctx context.Context, id string, req CheckoutRequest) (*domain.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}
	if _, err := s.store.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := wait(ctx, s.paymentDelay); err != nil {
		return nil, err
	}
	sess, err := s.store.Update(ctx, id, func(sess *domain.Session) error {
		sess.Account = entitlement.Upgrade(sess.Account)
		sess.Limit = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("session", id).Str("plan", string(sess.Account.Plan)).Msg("account upgraded")
	return sess, nil
}

// DismissLimit clears the limit notification.
func (s *Service) DismissLimit(ctx context.Context, id string) (*domain.Session, error) {
	return s.store.Update(ctx, id, func(sess *domain.Session) error {
		sess.Limit = nil
		return nil
	})
}

// SetPlan forces a plan on a live session. Used by support tooling.
func (s *Service) SetPlan(ctx context.Context, id string, plan domain.Plan) (*domain.Session, error) {
	return s.store.Update(ctx, id, func(sess *domain.Session) error {
		sess.Account = entitlement.SetPlan(sess.Account, plan)
		if !plan.IsFree() {
			sess.Limit = nil
		}
		return nil
	})
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:7])
}

package account

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geniemetrics/internal/domain"
)

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return NewService(store, Options{SessionTTL: time.Hour, Logger: zerolog.Nop()}), store
}

func login(t *testing.T, svc *Service) *domain.Session {
	t.Helper()
	sess, err := svc.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "pw"})
	require.NoError(t, err)
	return sess
}

func validCard() CheckoutRequest {
	return CheckoutRequest{Name: "Jane Doe", CardNumber: "4242 4242 4242 4242", Expiry: "12/29", CVC: "123"}
}

func TestLoginStartsFreeAccount(t *testing.T) {
	svc, _ := newTestService(t)
	sess := login(t, svc)

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, domain.PlanFree, sess.Account.Plan)
	assert.Equal(t, 5, sess.Account.SearchRemaining)
	assert.Equal(t, 50, sess.Account.AICreditsRemaining)
	assert.Equal(t, "jane", sess.Account.Name)
	assert.Len(t, sess.Account.ReferralCode, 7)
	assert.False(t, sess.Account.IsNewUser)
	assert.Nil(t, sess.Limit)
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "not-an-email", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "a@example.com"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSignupRequiresTerms(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Signup(context.Background(), SignupRequest{Email: "new@example.com", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "Terms of Service")

	sess, err := svc.Signup(context.Background(), SignupRequest{Email: "new@example.com", Password: "pw", AgreedToTerms: true})
	require.NoError(t, err)
	assert.True(t, sess.Account.IsNewUser)
	assert.Equal(t, "new", sess.Account.Name)
}

func TestAuthDelayHonoursCancellation(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, Options{AuthDelay: time.Hour, Logger: zerolog.Nop()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Login(ctx, LoginRequest{Email: "a@example.com", Password: "pw"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConsumeDeniesAndSignals(t *testing.T) {
	svc, _ := newTestService(t)
	sess := login(t, svc)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		d, err := svc.Consume(ctx, sess.ID, domain.ConsumptionRequest{Kind: domain.MeterSearch, Amount: 1})
		require.NoError(t, err)
		require.True(t, d.Authorized)
	}
	d, err := svc.Consume(ctx, sess.ID, domain.ConsumptionRequest{Kind: domain.MeterSearch, Amount: 1})
	require.NoError(t, err)
	assert.False(t, d.Authorized)

	got, err := svc.Session(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Limit)
	assert.Equal(t, domain.MeterSearch, got.Limit.Kind)
	assert.Equal(t, 0, got.Account.SearchRemaining)
	assert.Equal(t, 50, got.Account.AICreditsRemaining)

	// a later credit denial replaces the search signal
	_, err = svc.Consume(ctx, sess.ID, domain.ConsumptionRequest{Kind: domain.MeterAICredit, Amount: 51})
	require.NoError(t, err)
	got, err = svc.Session(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MeterAICredit, got.Limit.Kind)
	assert.Equal(t, 50, got.Account.AICreditsRemaining)

	got, err = svc.DismissLimit(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Limit)
}

func TestConsumeIsAtomicUnderConcurrency(t *testing.T) {
	svc, _ := newTestService(t)
	sess := login(t, svc)

	var granted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := svc.Consume(context.Background(), sess.ID, domain.ConsumptionRequest{Kind: domain.MeterAICredit, Amount: 5})
			if err == nil && d.Authorized {
				granted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), granted.Load())
	got, err := svc.Session(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Account.AICreditsRemaining)
}

func TestCheckoutUpgradesAndClearsLimit(t *testing.T) {
	svc, _ := newTestService(t)
	sess := login(t, svc)
	ctx := context.Background()

	_, err := svc.Consume(ctx, sess.ID, domain.ConsumptionRequest{Kind: domain.MeterAICredit, Amount: 500})
	require.NoError(t, err)

	got, err := svc.Checkout(ctx, sess.ID, validCard())
	require.NoError(t, err)
	assert.Equal(t, domain.PlanPro, got.Account.Plan)
	assert.Equal(t, domain.UnlimitedQuota, got.Account.SearchRemaining)
	assert.Equal(t, domain.UnlimitedQuota, got.Account.AICreditsRemaining)
	assert.Nil(t, got.Limit)

	d, err := svc.Consume(ctx, sess.ID, domain.ConsumptionRequest{Kind: domain.MeterAICredit, Amount: 20})
	require.NoError(t, err)
	assert.True(t, d.Authorized)
	assert.Equal(t, domain.UnlimitedQuota, d.Account.AICreditsRemaining)
}

func TestCheckoutValidation(t *testing.T) {
	svc, _ := newTestService(t)
	sess := login(t, svc)

	bad := []CheckoutRequest{
		{Name: "", CardNumber: "4242424242424242", Expiry: "12/29", CVC: "123"},
		{Name: "J", CardNumber: "4242", Expiry: "12/29", CVC: "123"},
		{Name: "J", CardNumber: "4242424242424242", Expiry: "13/29", CVC: "123"},
		{Name: "J", CardNumber: "4242424242424242", Expiry: "12/29", CVC: "12a"},
	}
	for _, req := range bad {
		_, err := svc.Checkout(context.Background(), sess.ID, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", req)
	}
	got, err := svc.Session(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanFree, got.Account.Plan)
}

func TestLogoutDiscardsSession(t *testing.T) {
	svc, _ := newTestService(t)
	sess := login(t, svc)
	require.NoError(t, svc.Logout(context.Background(), sess.ID))

	_, err := svc.Session(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Consume(context.Background(), sess.ID, domain.ConsumptionRequest{Kind: domain.MeterSearch, Amount: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionsExpire(t *testing.T) {
	svc, store := newTestService(t)
	sess := login(t, svc)
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err := svc.Session(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSetPlan(t *testing.T) {
	svc, _ := newTestService(t)
	sess := login(t, svc)

	got, err := svc.SetPlan(context.Background(), sess.ID, domain.PlanBusiness)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanBusiness, got.Account.Plan)

	got, err = svc.SetPlan(context.Background(), sess.ID, domain.PlanFree)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Account.SearchRemaining)
}

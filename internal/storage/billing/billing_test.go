package billing_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toonpulse/webtoon-platform/internal/kvstore"
	"github.com/toonpulse/webtoon-platform/internal/models"
	"github.com/toonpulse/webtoon-platform/internal/storage/billing"
)

func newStore(t *testing.T) (*billing.Store, kvstore.Store) {
	t.Helper()
	kv := kvstore.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	return billing.New(kv, log), kv
}

func TestStore_MethodsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	assert.Empty(t, store.Methods(ctx, "uid-1"))

	list := []models.PaymentMethod{
		{ID: "pm-1", UserUID: "uid-1", Type: models.MethodCreditCard, CardLast4: "4242", IsDefault: true, CreatedAt: time.Now().UTC()},
		{ID: "pm-2", UserUID: "uid-1", Type: models.MethodPayPal, AccountEmail: "ann@x.com"},
	}
	require.NoError(t, store.SaveMethods(ctx, "uid-1", list))

	got := store.Methods(ctx, "uid-1")
	require.Len(t, got, 2)
	assert.Equal(t, "pm-1", got[0].ID)
	assert.True(t, got[0].IsDefault)

	// Коллекции разных пользователей независимы.
	assert.Empty(t, store.Methods(ctx, "uid-2"))
}

func TestStore_TransactionsAndSubscriptions(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	require.NoError(t, store.SaveTransactions(ctx, "uid-1", []models.Transaction{
		{ID: "tx-1", UserUID: "uid-1", Amount: 24.99, Currency: "USD", Status: models.TxCompleted},
	}))
	require.NoError(t, store.SaveSubscriptions(ctx, "uid-1", []models.Subscription{
		{ID: "sub-1", UserUID: "uid-1", PlanID: "basic", Status: models.SubActive},
	}))

	require.Len(t, store.Transactions(ctx, "uid-1"), 1)
	require.Len(t, store.Subscriptions(ctx, "uid-1"), 1)
}

func TestStore_CorruptCollectionTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	store, kv := newStore(t)

	require.NoError(t, kv.Set(ctx, "payment_methods:uid-1", []byte("oops")))
	assert.Empty(t, store.Methods(ctx, "uid-1"))
}

package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/class_fund_app/internal/adapters/boxstore"
	memorykv "github.com/SscSPs/class_fund_app/internal/adapters/kv/memory"
	"github.com/SscSPs/class_fund_app/internal/core/domain"
	"github.com/SscSPs/class_fund_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end ledger behavior over a real box store.

func TestLedger_AddToEmptyPersistsOneElement(t *testing.T) {
	ctx := context.Background()
	store := boxstore.NewStore(memorykv.NewStore(), "boxes")
	ledger := services.NewBoxLedgerService(store)
	ledger.Initialize(ctx)
	require.Empty(t, ledger.GetAll())

	trip := domain.Box{ID: "1", Name: "Trip Fund", Balance: balance("0")}
	require.NoError(t, ledger.AddBox(ctx, trip))

	all := ledger.GetAll()
	require.Len(t, all, 1)
	assert.True(t, all[0].Equal(trip))

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.True(t, persisted[0].Equal(trip))
}

func TestLedger_EditSecondOfTwo(t *testing.T) {
	ctx := context.Background()
	store := boxstore.NewStore(memorykv.NewStore(), "boxes")
	require.NoError(t, store.Save(ctx, []domain.Box{
		{ID: "1", Name: "A", Balance: balance("10")},
		{ID: "2", Name: "B", Balance: balance("20")},
	}))
	ledger := services.NewBoxLedgerService(store)
	ledger.Initialize(ctx)

	replaced, err := ledger.EditBox(ctx, domain.Box{ID: "2", Name: "B2", Balance: balance("25")})
	require.NoError(t, err)
	assert.True(t, replaced)

	want := []domain.Box{
		{ID: "1", Name: "A", Balance: balance("10")},
		{ID: "2", Name: "B2", Balance: balance("25")},
	}
	for _, got := range [][]domain.Box{ledger.GetAll(), mustLoad(t, store)} {
		require.Len(t, got, 2)
		for i := range want {
			assert.True(t, want[i].Equal(got[i]), "position %d: %+v", i, got[i])
		}
	}
}

func TestLedger_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	kv := memorykv.NewStore()

	first := services.NewBoxLedgerService(boxstore.NewStore(kv, "boxes"))
	first.Initialize(ctx)
	require.NoError(t, first.AddBox(ctx, domain.Box{ID: "a", Name: "Trip"}))
	require.NoError(t, first.AddBox(ctx, domain.Box{ID: "b", Name: "Party", Balance: balance("3")}))

	second := services.NewBoxLedgerService(boxstore.NewStore(kv, "boxes"))
	second.Initialize(ctx)

	assert.Equal(t, []string{"a", "b"}, boxIDs(second.GetAll()))
	assert.False(t, second.GetAll()[0].Balance.Valid)
}

func mustLoad(t *testing.T, store *boxstore.Store) []domain.Box {
	t.Helper()
	boxes, err := store.Load(context.Background())
	require.NoError(t, err)
	return boxes
}

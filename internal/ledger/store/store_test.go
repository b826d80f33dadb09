package store_test

import (
	"context"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/assetbook/internal/database"
	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
	"github.com/MrJamesThe3rd/assetbook/internal/ledger/store"
)

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func setupStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "accounting.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db)
}

func createLedger(t *testing.T, s *store.Store, name string) *ledger.Ledger {
	t.Helper()

	l := &ledger.Ledger{Name: name, Description: name + " desc", CreatedAt: base}
	require.NoError(t, s.CreateLedger(context.Background(), l))
	require.NotZero(t, l.ID)

	return l
}

func addRecord(t *testing.T, s *store.Store, ledgerID int64, amount float64, at time.Time) *ledger.Record {
	t.Helper()

	r := &ledger.Record{LedgerID: ledgerID, Amount: amount, Note: "n", Period: "p", CreatedAt: at}
	require.NoError(t, s.AddRecord(context.Background(), r))
	require.NotZero(t, r.ID)

	return r
}

func TestStore_CreateAndListLedgers(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	names := []string{"Cash", "Brokerage", "Pension"}
	for _, n := range names {
		createLedger(t, s, n)
	}

	got, err := s.ListLedgers(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(names))

	for i, l := range got {
		assert.Equal(t, names[i], l.Name)
		assert.Equal(t, names[i]+" desc", l.Description)
		assert.True(t, base.Equal(l.CreatedAt))
	}

	assert.Less(t, got[0].ID, got[1].ID)
	assert.Less(t, got[1].ID, got[2].ID)
}

func TestStore_CreateLedger_Duplicate(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	createLedger(t, s, "Cash")

	err := s.CreateLedger(ctx, &ledger.Ledger{Name: "Cash", CreatedAt: base})
	require.ErrorIs(t, err, ledger.ErrConflict)
	assert.Contains(t, err.Error(), "UNIQUE")

	got, err := s.ListLedgers(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStore_GetLedger(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	want := createLedger(t, s, "Cash")

	got, err := s.GetLedger(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)

	_, err = s.GetLedger(ctx, want.ID+100)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestStore_LatestRecords(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	a := createLedger(t, s, "A")
	b := createLedger(t, s, "B")
	createLedger(t, s, "Empty")

	addRecord(t, s, a.ID, 100, base)
	latestA := addRecord(t, s, a.ID, 150, base.Add(time.Hour))
	addRecord(t, s, b.ID, 900, base.Add(2*time.Hour))
	latestB := addRecord(t, s, b.ID, 700, base.Add(3*time.Hour))
	// Inserted last but older: must not win.
	addRecord(t, s, a.ID, 1, base.Add(-time.Hour))

	got, err := s.LatestRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, latestA.ID, got[0].ID)
	assert.Equal(t, 150.0, got[0].Amount)
	assert.Equal(t, latestB.ID, got[1].ID)
	assert.Equal(t, 700.0, got[1].Amount)
}

func TestStore_LatestRecords_TieGoesToHighestID(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	a := createLedger(t, s, "A")

	addRecord(t, s, a.ID, 10, base)
	second := addRecord(t, s, a.ID, 20, base)

	got, err := s.LatestRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, 20.0, got[0].Amount)
}

func TestStore_DeleteLedger(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	a := createLedger(t, s, "A")
	b := createLedger(t, s, "B")

	addRecord(t, s, a.ID, 1, base)
	addRecord(t, s, a.ID, 2, base.Add(time.Minute))
	kept := addRecord(t, s, b.ID, 3, base)

	require.NoError(t, s.DeleteLedger(ctx, a.ID))
	// Second delete is a no-op.
	require.NoError(t, s.DeleteLedger(ctx, a.ID))

	ledgers, err := s.ListLedgers(ctx)
	require.NoError(t, err)
	require.Len(t, ledgers, 1)
	assert.Equal(t, b.ID, ledgers[0].ID)

	records, err := s.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, kept.ID, records[0].ID)
}

func TestStore_AddRecord_MissingLedger(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	err := s.AddRecord(ctx, &ledger.Record{LedgerID: 42, Amount: 1, CreatedAt: base})
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	records, err := s.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_RecordOrdering(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	a := createLedger(t, s, "A")
	b := createLedger(t, s, "B")

	offsets := []time.Duration{5, 1, 3, 3, 9, 0, 7}
	for i, off := range offsets {
		owner := a.ID
		if i%2 == 1 {
			owner = b.ID
		}

		addRecord(t, s, owner, float64(i), base.Add(off*time.Minute))
	}

	all, err := s.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(offsets))
	assert.True(t, sort.SliceIsSorted(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	}))

	history, err := s.ListHistory(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)

	for i, r := range history {
		assert.Equal(t, a.ID, r.LedgerID)

		if i > 0 {
			assert.False(t, r.CreatedAt.After(history[i-1].CreatedAt))
		}
	}
}

func TestStore_RecordRoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	a := createLedger(t, s, "A")
	at := time.Date(2023, 12, 31, 23, 59, 58, 123456789, time.FixedZone("CST", 8*3600))

	want := &ledger.Record{
		LedgerID:  a.ID,
		Amount:    -1234.5678,
		Note:      "year end",
		Period:    "2023 Q4",
		CreatedAt: at,
	}
	require.NoError(t, s.AddRecord(ctx, want))

	got, err := s.ListHistory(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, want.ID, got[0].ID)
	assert.Equal(t, want.Amount, got[0].Amount)
	assert.Equal(t, want.Note, got[0].Note)
	assert.Equal(t, want.Period, got[0].Period)
	assert.True(t, at.Equal(got[0].CreatedAt), "want %s, got %s", at, got[0].CreatedAt)
}

func TestStore_WithService(t *testing.T) {
	s := setupStore(t)
	svc := ledger.NewService(s)
	ctx := context.Background()

	a, err := svc.CreateLedger(ctx, ledger.CreateLedgerParams{Name: "A"})
	require.NoError(t, err)
	b, err := svc.CreateLedger(ctx, ledger.CreateLedgerParams{Name: "B"})
	require.NoError(t, err)

	_, err = svc.AddRecord(ctx, ledger.AddRecordParams{LedgerID: a.ID, Amount: 100, CreatedAt: base})
	require.NoError(t, err)
	_, err = svc.AddRecord(ctx, ledger.AddRecordParams{LedgerID: a.ID, Amount: 300, CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)
	_, err = svc.AddRecord(ctx, ledger.AddRecordParams{LedgerID: b.ID, Amount: 700, CreatedAt: base})
	require.NoError(t, err)

	summaries, err := svc.BuildSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "A", summaries[0].Ledger.Name)
	assert.InDelta(t, 300, summaries[0].CurrentAmount, 1e-9)
	assert.InDelta(t, 30, summaries[0].Percentage, 1e-9)
	assert.Equal(t, "B", summaries[1].Ledger.Name)
	assert.InDelta(t, 70, summaries[1].Percentage, 1e-9)
	assert.InDelta(t, 1000, ledger.Total(summaries), 1e-9)
}

package presenter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
	"github.com/MrJamesThe3rd/assetbook/internal/presenter"
	"github.com/MrJamesThe3rd/assetbook/internal/report"
)

func setup(t *testing.T) (*presenter.Presenter, *ledger.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	p := presenter.New(ledger.NewService(repo), report.NewMoney("USD"), report.TrendOptions{WithTotal: true})

	return p, repo
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "1234.56", want: 1234.56},
		{in: " 1,234,567.5 ", want: 1234567.5},
		{in: "1_000", want: 1000},
		{in: "-20", want: -20},
		{in: "0", want: 0},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "12.3.4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := presenter.ParseAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ledger.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := presenter.ParseDate("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = presenter.ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), got)

	got, err = presenter.ParseDate("2024-03-01 14:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 14, 30, 0, 0, time.Local), got)

	got, err = presenter.ParseDate("2024-03-01T14:30:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)))

	_, err = presenter.ParseDate("01/03/2024")
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestPresenter_AddRecord(t *testing.T) {
	p, repo := setup(t)

	repo.EXPECT().
		AddRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *ledger.Record) error {
			r.ID = 3
			return nil
		})

	r, err := p.AddRecord(context.Background(), presenter.RecordInput{
		LedgerID: 1,
		Amount:   "2,500.75",
		Note:     " bonus ",
		Period:   "2024 Q1",
		Date:     "2024-03-31T10:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), r.ID)
	assert.InDelta(t, 2500.75, r.Amount, 1e-9)
	assert.Equal(t, "bonus", r.Note)
	assert.Equal(t, "2024 Q1", r.Period)
	assert.Equal(t, time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC), r.CreatedAt)
}

func TestPresenter_AddRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   presenter.RecordInput
	}{
		{name: "NotANumber", in: presenter.RecordInput{LedgerID: 1, Amount: "lots"}},
		{name: "BadDate", in: presenter.RecordInput{LedgerID: 1, Amount: "1", Date: "yesterday"}},
		{name: "NoLedger", in: presenter.RecordInput{Amount: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No repository calls are expected: validation fails first.
			p, _ := setup(t)

			_, err := p.AddRecord(context.Background(), tt.in)
			assert.ErrorIs(t, err, ledger.ErrValidation)
		})
	}
}

func TestPresenter_History(t *testing.T) {
	p, repo := setup(t)

	l := &ledger.Ledger{ID: 2, Name: "Stocks"}
	records := []*ledger.Record{{ID: 9, LedgerID: 2, Amount: 10}}

	repo.EXPECT().GetLedger(gomock.Any(), int64(2)).Return(l, nil)
	repo.EXPECT().ListHistory(gomock.Any(), int64(2)).Return(records, nil)

	h, err := p.History(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, l, h.Ledger)
	assert.Equal(t, records, h.Records)
}

func TestPresenter_History_NotFound(t *testing.T) {
	p, repo := setup(t)

	repo.EXPECT().GetLedger(gomock.Any(), int64(5)).Return(nil, ledger.ErrNotFound)

	_, err := p.History(context.Background(), 5)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestPresenter_Records(t *testing.T) {
	p, repo := setup(t)

	repo.EXPECT().ListLedgers(gomock.Any()).Return([]*ledger.Ledger{{ID: 1, Name: "Cash"}}, nil)
	repo.EXPECT().ListRecords(gomock.Any()).Return([]*ledger.Record{{ID: 1, LedgerID: 1}}, nil)

	all, err := p.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, all.Records, 1)
	assert.Equal(t, "Cash", all.Name(1))
	assert.Equal(t, "#4", all.Name(4))
}

func TestPresenter_Dashboard(t *testing.T) {
	p, repo := setup(t)

	repo.EXPECT().ListLedgers(gomock.Any()).Return([]*ledger.Ledger{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
	}, nil)
	repo.EXPECT().LatestRecords(gomock.Any()).Return([]*ledger.Record{
		{ID: 1, LedgerID: 1, Amount: 300},
		{ID: 2, LedgerID: 2, Amount: 700},
	}, nil)

	d, err := p.Dashboard(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1000, d.Total, 1e-9)
	require.Len(t, d.Slices, 2)
	assert.InDelta(t, 70, d.Slices[1].Percentage, 1e-9)
}

func TestPresenter_Dashboard_Error(t *testing.T) {
	p, repo := setup(t)

	repo.EXPECT().ListLedgers(gomock.Any()).Return(nil, ledger.ErrStoreUnavailable)

	_, err := p.Dashboard(context.Background())
	assert.True(t, errors.Is(err, ledger.ErrStoreUnavailable))
}

func TestPresenter_Trend_DefaultPoints(t *testing.T) {
	p, repo := setup(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var records []*ledger.Record
	for i := 20; i > 0; i-- {
		records = append(records, &ledger.Record{
			ID:        int64(i),
			LedgerID:  1,
			Amount:    float64(i),
			CreatedAt: base.AddDate(0, 0, i),
		})
	}

	repo.EXPECT().ListLedgers(gomock.Any()).Return([]*ledger.Ledger{{ID: 1, Name: "A"}}, nil)
	repo.EXPECT().ListRecords(gomock.Any()).Return(records, nil)

	series, err := p.Trend(context.Background(), 0, true)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Len(t, series[0].Points, report.DefaultTrendPoints)
	assert.InDelta(t, 20, series[0].Points[report.DefaultTrendPoints-1].Amount, 1e-9)
	assert.True(t, series[1].Total)
}

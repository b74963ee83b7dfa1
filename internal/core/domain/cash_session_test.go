package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenominations(t *testing.T) {
	d := domain.Denominations{10000: 2, 5000: 1, 100: 7}
	require.NoError(t, d.Validate())
	assert.Equal(t, "25700", d.Total().String())

	assert.ErrorIs(t, domain.Denominations{0: 1}.Validate(), apperrors.ErrValidation)
	assert.ErrorIs(t, domain.Denominations{1000: -1}.Validate(), apperrors.ErrValidation)
	assert.Equal(t, "0", domain.Denominations{}.Total().String())
}

func TestDenominations_RejectsOverflowingTotals(t *testing.T) {
	tests := []struct {
		name string
		d    domain.Denominations
	}{
		{"product overflows int64", domain.Denominations{1 << 62: 4}},
		{"max value counted twice", domain.Denominations{9223372036854775807: 2}},
		{"single note above balance column", domain.Denominations{domain.MaxAmount + 1: 1}},
		{"running sum above balance column", domain.Denominations{domain.MaxAmount: 1, 1: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.d.Validate(), apperrors.ErrValidation)
		})
	}

	atLimit := domain.Denominations{domain.MaxAmount: 1}
	require.NoError(t, atLimit.Validate())
	assert.Equal(t, "999999999999", atLimit.Total().String())
}

func TestOpenSession_RejectsOverflowingCount(t *testing.T) {
	s, err := domain.OpenSession("cs1", "b1", "u1", domain.Denominations{1 << 62: 4}, time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, s)
}

func TestCashSession_CloseRejectsOverflowingCount(t *testing.T) {
	now := time.Now().UTC()
	s, err := domain.OpenSession("cs1", "b1", "u1", domain.Denominations{1000: 1}, now)
	require.NoError(t, err)

	err = s.Close("u1", domain.Denominations{9223372036854775807: 2}, domain.CloseAdjustments{}, now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, domain.SessionOpen, s.Status)
	assert.Nil(t, s.ClosingBalanceReal)
}

func TestCashSession_OpenCloseWithoutSales(t *testing.T) {
	now := time.Now().UTC()
	s, err := domain.OpenSession("cs1", "b1", "u1", domain.Denominations{10000: 2}, now)
	require.NoError(t, err)
	assert.Equal(t, "20000", s.OpeningBalance.String())
	assert.True(t, s.Sales.Sum().IsZero())

	require.NoError(t, s.Close("u1", domain.Denominations{10000: 2}, domain.CloseAdjustments{}, now))

	assert.Equal(t, domain.SessionClosed, s.Status)
	assert.Equal(t, "20000", s.ClosingBalanceExpected.String())
	assert.Equal(t, "20000", s.ClosingBalanceReal.String())
	assert.True(t, s.Variance.IsZero())
}

func TestCashSession_CloseRecordsVariance(t *testing.T) {
	now := time.Now().UTC()
	s, err := domain.OpenSession("cs1", "b1", "u1", domain.Denominations{1000: 10}, now)
	require.NoError(t, err)
	require.NoError(t, s.Accumulate(domain.PaymentCash, dec("5000")))
	require.NoError(t, s.Accumulate(domain.PaymentDebit, dec("7000")))

	adj := domain.CloseAdjustments{Withdrawals: dec("2000"), Expenses: dec("500"), CardTerminal: dec("7000")}
	require.NoError(t, s.Close("u2", domain.Denominations{1000: 12}, adj, now))

	// 10000 + 5000 - 2000 - 500
	assert.Equal(t, "12500", s.ClosingBalanceExpected.String())
	assert.Equal(t, "12000", s.ClosingBalanceReal.String())
	assert.Equal(t, "-500", s.Variance.String())
	// 12000 + 7000 - 2000 - 500
	assert.Equal(t, "16500", s.TotalDeclared.String())
	assert.Equal(t, "u2", *s.ClosedBy)
}

func TestCashSession_ClosedIsTerminal(t *testing.T) {
	now := time.Now().UTC()
	s, err := domain.OpenSession("cs1", "b1", "u1", nil, now)
	require.NoError(t, err)
	require.NoError(t, s.Close("u1", nil, domain.CloseAdjustments{}, now))

	assert.ErrorIs(t, s.Close("u1", nil, domain.CloseAdjustments{}, now), apperrors.ErrSessionClosed)
	assert.ErrorIs(t, s.Accumulate(domain.PaymentCash, dec("1")), apperrors.ErrSessionClosed)
	assert.ErrorIs(t, s.RecordHandover("u2", domain.Denominations{100: 1}, now), apperrors.ErrSessionClosed)
}

func TestCashSession_HandoverKeepsAccumulators(t *testing.T) {
	now := time.Now().UTC()
	s, err := domain.OpenSession("cs1", "b1", "u1", domain.Denominations{500: 4}, now)
	require.NoError(t, err)
	require.NoError(t, s.Accumulate(domain.PaymentCash, dec("3000")))

	require.NoError(t, s.RecordHandover("u2", domain.Denominations{1000: 5}, now))

	assert.Equal(t, domain.SessionOpen, s.Status)
	assert.Equal(t, "5000", s.Handover.Total.String())
	assert.Equal(t, "3000", s.Sales.Cash.String())
}

func TestCloseAdjustments_RejectsNegative(t *testing.T) {
	adj := domain.CloseAdjustments{Expenses: dec("-1")}
	assert.ErrorIs(t, adj.Validate(), apperrors.ErrValidation)
}

func TestSummarize_NetSubtractsVoids(t *testing.T) {
	s := domain.CashSession{SessionID: "cs1", Status: domain.SessionOpen}
	s.Sales.Cash = dec("9000")
	s.Sales.Transfer = dec("4000")
	totals := []domain.PaymentTotal{
		{Status: domain.SaleCompleted, Method: domain.PaymentCash, Total: dec("6000"), Count: 2},
		{Status: domain.SaleVoided, Method: domain.PaymentCash, Total: dec("3000"), Count: 1},
		{Status: domain.SaleCompleted, Method: domain.PaymentTransfer, Total: dec("4000"), Count: 1},
	}

	summary := domain.Summarize(s, totals)

	require.Len(t, summary.Methods, len(domain.PaymentMethods))
	cash := summary.Methods[0]
	assert.Equal(t, domain.PaymentCash, cash.Method)
	assert.Equal(t, "9000", cash.Gross.String())
	assert.Equal(t, "3000", cash.Voided.String())
	assert.Equal(t, "6000", cash.Net.String())
	assert.Equal(t, 3, cash.GrossCount)
	assert.Equal(t, 1, cash.VoidedCount)
	assert.Equal(t, "6000", summary.CashNet.String())
	assert.Equal(t, "10000", summary.GrossNet.String())
}

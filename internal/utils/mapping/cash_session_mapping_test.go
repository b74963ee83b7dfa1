package mapping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
)

func TestCashSessionMapping_OpenSessionHasNullClosingFigures(t *testing.T) {
	opened := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	session, err := domain.OpenSession("s-1", "b-1", "u-1", domain.Denominations{1000: 3}, opened)
	require.NoError(t, err)

	m, err := ToModelCashSession(*session)
	require.NoError(t, err)
	assert.False(t, m.ClosingBalanceReal.Valid)
	assert.False(t, m.Variance.Valid)
	assert.False(t, m.ClosedAt.Valid)
	assert.False(t, m.ClosedBy.Valid)
	assert.Nil(t, m.ClosingDenominations)
	assert.Nil(t, m.Adjustments)

	back, err := ToDomainCashSession(m)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionOpen, back.Status)
	assert.Equal(t, domain.Denominations{1000: 3}, back.OpeningDenominations)
	assert.True(t, back.OpeningBalance.Equal(decimal.NewFromInt(3000)))
	assert.Nil(t, back.ClosingBalanceReal)
	assert.Nil(t, back.ClosedAt)
	assert.Nil(t, back.Adjustments)
}

func TestCashSessionMapping_ClosedSessionRoundTrip(t *testing.T) {
	opened := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	session, err := domain.OpenSession("s-1", "b-1", "u-1", domain.Denominations{1000: 5}, opened)
	require.NoError(t, err)
	require.NoError(t, session.Accumulate(domain.PaymentCash, decimal.NewFromInt(2000)))
	require.NoError(t, session.RecordHandover("u-2", domain.Denominations{500: 2}, opened.Add(time.Hour)))
	adj := domain.CloseAdjustments{Expenses: decimal.NewFromInt(500)}
	require.NoError(t, session.Close("u-2", domain.Denominations{1000: 6}, adj, opened.Add(8*time.Hour)))

	m, err := ToModelCashSession(*session)
	require.NoError(t, err)
	back, err := ToDomainCashSession(m)
	require.NoError(t, err)

	assert.Equal(t, domain.SessionClosed, back.Status)
	require.NotNil(t, back.ClosedBy)
	assert.Equal(t, "u-2", *back.ClosedBy)
	require.NotNil(t, back.ClosedAt)
	assert.True(t, back.ClosedAt.Equal(opened.Add(8*time.Hour)))
	require.NotNil(t, back.ClosingBalanceExpected)
	assert.True(t, back.ClosingBalanceExpected.Equal(decimal.NewFromInt(6500)))
	require.NotNil(t, back.Variance)
	assert.True(t, back.Variance.Equal(decimal.NewFromInt(-500)))
	assert.Equal(t, domain.Denominations{1000: 6}, back.ClosingDenominations)
	require.NotNil(t, back.Adjustments)
	assert.True(t, back.Adjustments.Expenses.Equal(decimal.NewFromInt(500)))
	require.NotNil(t, back.Handover)
	assert.Equal(t, "u-2", back.Handover.ToUserID)
	assert.True(t, back.Handover.Total.Equal(decimal.NewFromInt(1000)))
}

func TestToNullString_EmptyIsNull(t *testing.T) {
	empty := ""
	assert.False(t, toNullString(&empty).Valid)
	assert.False(t, toNullString(nil).Valid)
	assert.Nil(t, fromNullString(toNullString(&empty)))

	id := "c-1"
	got := fromNullString(toNullString(&id))
	require.NotNil(t, got)
	assert.Equal(t, "c-1", *got)
}

package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/SscSPs/vetpos_backend/internal/models"
)

// ToModelCashSession converts a domain CashSession to a model CashSession
func ToModelCashSession(d domain.CashSession) (models.CashSession, error) {
	m := models.CashSession{
		SessionID:              d.SessionID,
		BranchID:               d.BranchID,
		Status:                 string(d.Status),
		OpenedAt:               d.OpenedAt,
		OpenedBy:               d.OpenedBy,
		OpeningBalance:         d.OpeningBalance,
		SalesCash:              d.Sales.Cash,
		SalesDebit:             d.Sales.Debit,
		SalesCredit:            d.Sales.Credit,
		SalesTransfer:          d.Sales.Transfer,
		SalesDebt:              d.Sales.Debt,
		ClosingBalanceExpected: toNullDecimal(d.ClosingBalanceExpected),
		ClosingBalanceReal:     toNullDecimal(d.ClosingBalanceReal),
		Variance:               toNullDecimal(d.Variance),
		TotalDeclared:          toNullDecimal(d.TotalDeclared),
		ClosedAt:               toNullTime(d.ClosedAt),
		ClosedBy:               toNullString(d.ClosedBy),
		Version:                d.Version,
	}
	var err error
	if m.OpeningDenominations, err = marshalDenominations(d.OpeningDenominations); err != nil {
		return m, err
	}
	if d.ClosingDenominations != nil {
		if m.ClosingDenominations, err = marshalDenominations(d.ClosingDenominations); err != nil {
			return m, err
		}
	}
	if d.Adjustments != nil {
		if m.Adjustments, err = json.Marshal(d.Adjustments); err != nil {
			return m, fmt.Errorf("failed to encode close adjustments: %w", err)
		}
	}
	if d.Handover != nil {
		if m.Handover, err = json.Marshal(d.Handover); err != nil {
			return m, fmt.Errorf("failed to encode handover: %w", err)
		}
	}
	return m, nil
}

// ToDomainCashSession converts a model CashSession to a domain CashSession
func ToDomainCashSession(m models.CashSession) (domain.CashSession, error) {
	d := domain.CashSession{
		SessionID:      m.SessionID,
		BranchID:       m.BranchID,
		Status:         domain.SessionStatus(m.Status),
		OpenedAt:       m.OpenedAt,
		OpenedBy:       m.OpenedBy,
		OpeningBalance: m.OpeningBalance,
		Sales: domain.SalesTotals{
			Cash:     m.SalesCash,
			Debit:    m.SalesDebit,
			Credit:   m.SalesCredit,
			Transfer: m.SalesTransfer,
			Debt:     m.SalesDebt,
		},
		ClosingBalanceExpected: fromNullDecimal(m.ClosingBalanceExpected),
		ClosingBalanceReal:     fromNullDecimal(m.ClosingBalanceReal),
		Variance:               fromNullDecimal(m.Variance),
		TotalDeclared:          fromNullDecimal(m.TotalDeclared),
		ClosedAt:               fromNullTime(m.ClosedAt),
		ClosedBy:               fromNullString(m.ClosedBy),
		Version:                m.Version,
	}
	var err error
	if d.OpeningDenominations, err = unmarshalDenominations(m.OpeningDenominations); err != nil {
		return d, err
	}
	if d.OpeningDenominations == nil {
		d.OpeningDenominations = domain.Denominations{}
	}
	if d.ClosingDenominations, err = unmarshalDenominations(m.ClosingDenominations); err != nil {
		return d, err
	}
	if len(m.Adjustments) > 0 {
		var adj domain.CloseAdjustments
		if err := json.Unmarshal(m.Adjustments, &adj); err != nil {
			return d, fmt.Errorf("failed to decode close adjustments of session %s: %w", m.SessionID, err)
		}
		d.Adjustments = &adj
	}
	if len(m.Handover) > 0 {
		var h domain.Handover
		if err := json.Unmarshal(m.Handover, &h); err != nil {
			return d, fmt.Errorf("failed to decode handover of session %s: %w", m.SessionID, err)
		}
		d.Handover = &h
	}
	return d, nil
}

func marshalDenominations(d domain.Denominations) ([]byte, error) {
	if d == nil {
		d = domain.Denominations{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode denominations: %w", err)
	}
	return b, nil
}

func unmarshalDenominations(b []byte) (domain.Denominations, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	var d domain.Denominations
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("failed to decode denominations: %w", err)
	}
	return d, nil
}

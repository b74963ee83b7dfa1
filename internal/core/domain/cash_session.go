package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Denominations maps a note or coin value to the number counted.
type Denominations map[int64]int

// MaxAmount is the largest whole amount a NUMERIC(14,2) balance column holds.
const MaxAmount int64 = 999_999_999_999

// Validate rejects non-positive values, negative counts and counts whose
// total exceeds MaxAmount.
func (d Denominations) Validate() error {
	var total int64
	for value, count := range d {
		if value <= 0 {
			return fmt.Errorf("%w: denomination %d must be positive", apperrors.ErrValidation, value)
		}
		if count < 0 {
			return fmt.Errorf("%w: count for denomination %d cannot be negative", apperrors.ErrValidation, value)
		}
		if count > 0 && value > (MaxAmount-total)/int64(count) {
			return fmt.Errorf("%w: denomination total exceeds %d", apperrors.ErrValidation, MaxAmount)
		}
		total += value * int64(count)
	}
	return nil
}

// Total is Σ value*count. Only meaningful after Validate.
func (d Denominations) Total() decimal.Decimal {
	var total int64
	for value, count := range d {
		total += value * int64(count)
	}
	return decimal.NewFromInt(total)
}

// SessionStatus is the cash session state.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// SalesTotals are the per-method running accumulators of a session.
type SalesTotals struct {
	Cash     decimal.Decimal `json:"cash"`
	Debit    decimal.Decimal `json:"debit"`
	Credit   decimal.Decimal `json:"credit"`
	Transfer decimal.Decimal `json:"transfer"`
	Debt     decimal.Decimal `json:"debt"`
}

// Add increments the accumulator for method.
func (t *SalesTotals) Add(method PaymentMethod, amount decimal.Decimal) error {
	switch method {
	case PaymentCash:
		t.Cash = t.Cash.Add(amount)
	case PaymentDebit:
		t.Debit = t.Debit.Add(amount)
	case PaymentCredit:
		t.Credit = t.Credit.Add(amount)
	case PaymentTransfer:
		t.Transfer = t.Transfer.Add(amount)
	case PaymentDebt:
		t.Debt = t.Debt.Add(amount)
	default:
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, method)
	}
	return nil
}

// Get returns the accumulator for method.
func (t SalesTotals) Get(method PaymentMethod) decimal.Decimal {
	switch method {
	case PaymentCash:
		return t.Cash
	case PaymentDebit:
		return t.Debit
	case PaymentCredit:
		return t.Credit
	case PaymentTransfer:
		return t.Transfer
	case PaymentDebt:
		return t.Debt
	}
	return decimal.Zero
}

// Sum is the total across methods.
func (t SalesTotals) Sum() decimal.Decimal {
	return t.Cash.Add(t.Debit).Add(t.Credit).Add(t.Transfer).Add(t.Debt)
}

// CloseAdjustments are the manually declared figures entered at close.
type CloseAdjustments struct {
	Transfer     decimal.Decimal `json:"transfer"`
	CardTerminal decimal.Decimal `json:"cardTerminal"`
	Withdrawals  decimal.Decimal `json:"withdrawals"`
	Expenses     decimal.Decimal `json:"expenses"`
	Debt         decimal.Decimal `json:"debt"`
	OtherDayCash decimal.Decimal `json:"otherDayCash"`
	OtherDayCard decimal.Decimal `json:"otherDayCard"`
	NextDayFloat decimal.Decimal `json:"nextDayFloat"`
}

// Validate rejects negative declarations.
func (a CloseAdjustments) Validate() error {
	fields := map[string]decimal.Decimal{
		"transfer":     a.Transfer,
		"cardTerminal": a.CardTerminal,
		"withdrawals":  a.Withdrawals,
		"expenses":     a.Expenses,
		"debt":         a.Debt,
		"otherDayCash": a.OtherDayCash,
		"otherDayCard": a.OtherDayCard,
		"nextDayFloat": a.NextDayFloat,
	}
	for name, v := range fields {
		if v.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", apperrors.ErrValidation, name)
		}
	}
	return nil
}

// Handover is a mid-shift count handed to another employee.
type Handover struct {
	ToUserID      string          `json:"toUserID"`
	Denominations Denominations   `json:"denominations"`
	Total         decimal.Decimal `json:"total"`
	Date          time.Time       `json:"date"`
}

// CashSession is one drawer shift for a branch.
type CashSession struct {
	SessionID              string            `json:"sessionID"`
	BranchID               string            `json:"branchID"`
	Status                 SessionStatus     `json:"status"`
	OpenedAt               time.Time         `json:"openedAt"`
	OpenedBy               string            `json:"openedBy"`
	OpeningBalance         decimal.Decimal   `json:"openingBalance"`
	OpeningDenominations   Denominations     `json:"openingDenominations"`
	Sales                  SalesTotals       `json:"sales"`
	ClosingBalanceExpected *decimal.Decimal  `json:"closingBalanceExpected,omitempty"`
	ClosingBalanceReal     *decimal.Decimal  `json:"closingBalanceReal,omitempty"`
	ClosingDenominations   Denominations     `json:"closingDenominations,omitempty"`
	Variance               *decimal.Decimal  `json:"variance,omitempty"`
	TotalDeclared          *decimal.Decimal  `json:"totalDeclared,omitempty"`
	Adjustments            *CloseAdjustments `json:"adjustments,omitempty"`
	ClosedAt               *time.Time        `json:"closedAt,omitempty"`
	ClosedBy               *string           `json:"closedBy,omitempty"`
	Handover               *Handover         `json:"handover,omitempty"`
	Version                int64             `json:"version"`
}

// OpenSession builds a new OPEN session. The opening balance is derived
// from the counted denominations.
func OpenSession(id, branchID, userID string, denominations Denominations, at time.Time) (*CashSession, error) {
	if branchID == "" {
		return nil, fmt.Errorf("%w: branch is required", apperrors.ErrValidation)
	}
	if denominations == nil {
		denominations = Denominations{}
	}
	if err := denominations.Validate(); err != nil {
		return nil, err
	}
	return &CashSession{
		SessionID:            id,
		BranchID:             branchID,
		Status:               SessionOpen,
		OpenedAt:             at,
		OpenedBy:             userID,
		OpeningBalance:       denominations.Total(),
		OpeningDenominations: denominations,
	}, nil
}

func (s *CashSession) requireOpen() error {
	if s.Status != SessionOpen {
		return fmt.Errorf("%w: session %s", apperrors.ErrSessionClosed, s.SessionID)
	}
	return nil
}

// Accumulate adds a completed sale's total to the matching accumulator.
func (s *CashSession) Accumulate(method PaymentMethod, amount decimal.Decimal) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	return s.Sales.Add(method, amount)
}

// RecordHandover annotates an open session with a handover count.
func (s *CashSession) RecordHandover(toUserID string, denominations Denominations, date time.Time) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	if err := denominations.Validate(); err != nil {
		return err
	}
	s.Handover = &Handover{
		ToUserID:      toUserID,
		Denominations: denominations,
		Total:         denominations.Total(),
		Date:          date,
	}
	return nil
}

// ExpectedClosing is opening + cash sales - withdrawals - expenses.
func (s *CashSession) ExpectedClosing(adj CloseAdjustments) decimal.Decimal {
	return s.OpeningBalance.Add(s.Sales.Cash).Sub(adj.Withdrawals).Sub(adj.Expenses)
}

// Close terminates the session, recording expected, real and variance.
// A mismatch never blocks closing.
func (s *CashSession) Close(userID string, counted Denominations, adj CloseAdjustments, at time.Time) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	if counted == nil {
		counted = Denominations{}
	}
	if err := counted.Validate(); err != nil {
		return err
	}
	if err := adj.Validate(); err != nil {
		return err
	}
	realBalance := counted.Total()
	expected := s.ExpectedClosing(adj)
	variance := realBalance.Sub(expected)
	declared := realBalance.
		Add(adj.Debt).
		Add(adj.CardTerminal).
		Add(adj.Transfer).
		Sub(adj.Withdrawals).
		Sub(adj.Expenses).
		Add(adj.OtherDayCash).
		Add(adj.OtherDayCard)

	s.Status = SessionClosed
	s.ClosingDenominations = counted
	s.ClosingBalanceReal = &realBalance
	s.ClosingBalanceExpected = &expected
	s.Variance = &variance
	s.TotalDeclared = &declared
	s.Adjustments = &adj
	s.ClosedAt = &at
	s.ClosedBy = &userID
	return nil
}

// MethodSummary is gross, voided and net sales for one payment method.
type MethodSummary struct {
	Method      PaymentMethod   `json:"method"`
	Gross       decimal.Decimal `json:"gross"`
	GrossCount  int             `json:"grossCount"`
	Voided      decimal.Decimal `json:"voided"`
	VoidedCount int             `json:"voidedCount"`
	Net         decimal.Decimal `json:"net"`
}

// PaymentTotal is an aggregate of sales for one status and method.
type PaymentTotal struct {
	Status SaleStatus
	Method PaymentMethod
	Total  decimal.Decimal
	Count  int
}

// SessionSummary is the reconciliation view of a session.
type SessionSummary struct {
	Session  CashSession      `json:"session"`
	Methods  []MethodSummary  `json:"methods"`
	GrossNet decimal.Decimal  `json:"grossNet"`
	CashNet  decimal.Decimal  `json:"cashNet"`
	Expected *decimal.Decimal `json:"expected,omitempty"`
	Real     *decimal.Decimal `json:"real,omitempty"`
	Variance *decimal.Decimal `json:"variance,omitempty"`
}

// Summarize builds the reconciliation view. The gross figures come from the
// session accumulators; voided figures from the sale aggregates.
func Summarize(s CashSession, totals []PaymentTotal) SessionSummary {
	voided := make(map[PaymentMethod]PaymentTotal)
	counts := make(map[PaymentMethod]int)
	for _, t := range totals {
		counts[t.Method] += t.Count
		if t.Status == SaleVoided {
			voided[t.Method] = t
		}
	}
	summary := SessionSummary{
		Session:  s,
		Expected: s.ClosingBalanceExpected,
		Real:     s.ClosingBalanceReal,
		Variance: s.Variance,
	}
	for _, method := range PaymentMethods {
		gross := s.Sales.Get(method)
		v := voided[method]
		net := gross.Sub(v.Total)
		summary.Methods = append(summary.Methods, MethodSummary{
			Method:      method,
			Gross:       gross,
			GrossCount:  counts[method],
			Voided:      v.Total,
			VoidedCount: v.Count,
			Net:         net,
		})
		summary.GrossNet = summary.GrossNet.Add(net)
		if method == PaymentCash {
			summary.CashNet = net
		}
	}
	return summary
}

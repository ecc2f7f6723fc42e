package dto

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// amount decodes like decimal.Decimal but reads an empty string as zero.
type amount struct {
	decimal.Decimal
}

func (a *amount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte(`""`)) {
		a.Decimal = decimal.Zero
		return nil
	}
	return a.Decimal.UnmarshalJSON(b)
}

func (g *GoalRecord) UnmarshalJSON(b []byte) error {
	type plain GoalRecord
	aux := struct {
		*plain
		TargetAmount        amount `json:"targetAmount"`
		MonthlyContribution amount `json:"monthlyContribution"`
	}{plain: (*plain)(g)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	g.TargetAmount = aux.TargetAmount.Decimal
	g.MonthlyContribution = aux.MonthlyContribution.Decimal
	return nil
}

func (t *TransactionRecord) UnmarshalJSON(b []byte) error {
	type plain TransactionRecord
	aux := struct {
		*plain
		Amount amount `json:"amount"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	t.Amount = aux.Amount.Decimal
	return nil
}

func (i *InvestmentRecord) UnmarshalJSON(b []byte) error {
	type plain InvestmentRecord
	aux := struct {
		*plain
		AllocationPercentage amount `json:"allocationPercentage"`
		CurrentValue         amount `json:"currentValue"`
	}{plain: (*plain)(i)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	i.AllocationPercentage = aux.AllocationPercentage.Decimal
	i.CurrentValue = aux.CurrentValue.Decimal
	return nil
}

func (d *ChildDetail) UnmarshalJSON(b []byte) error {
	type plain ChildDetail
	aux := struct {
		*plain
		SavingsBalance amount `json:"savingsBalance"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	d.SavingsBalance = aux.SavingsBalance.Decimal
	return nil
}

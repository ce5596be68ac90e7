package model

import "github.com/shopspring/decimal"

// FeeAssessment is computed on demand and never stored.
type FeeAssessment struct {
	FeeAmount   decimal.Decimal `json:"fee_amount"`
	DaysOverdue int             `json:"days_overdue"`
	Status      FeeStatus       `json:"status"`
}

func NoActiveRecord() FeeAssessment {
	return FeeAssessment{FeeAmount: decimal.Zero, Status: FeeStatusNoActiveRecord}
}

func NotOverdue() FeeAssessment {
	return FeeAssessment{FeeAmount: decimal.Zero, Status: FeeStatusNotOverdue}
}

func (f FeeAssessment) IsOverdue() bool {
	return f.DaysOverdue > 0
}

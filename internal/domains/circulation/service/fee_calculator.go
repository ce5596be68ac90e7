package service

import (
	"time"

	"github.com/shopspring/decimal"

	"library-backend/internal/domains/circulation/model"
)

// =====================================================
// FEE CALCULATOR
// =====================================================
// Pure functions only: fees are derived from dates at call time and
// never stored.

// FeeForDays applies the tiered schedule: $0.50/day for the first 7 days,
// $1.00/day after that, capped at $15.00 per loan.
func FeeForDays(days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}

	firstTier := days
	if firstTier > model.FirstTierDays {
		firstTier = model.FirstTierDays
	}
	secondTier := days - firstTier

	fee := model.FirstTierDailyRate.Mul(decimal.NewFromInt(int64(firstTier))).
		Add(model.SecondTierDailyRate.Mul(decimal.NewFromInt(int64(secondTier))))

	if fee.GreaterThan(model.MaxFeePerLoan) {
		fee = model.MaxFeePerLoan
	}
	return fee.Round(2)
}

// DaysOverdue counts whole days elapsed since due. Partial days are dropped.
func DaysOverdue(due, now time.Time) int {
	if !now.After(due) {
		return 0
	}
	return int(now.Sub(due) / (model.HoursPerDay * time.Hour))
}

// SelectCurrentLoan picks the active record for bookID with the latest
// borrow date, breaking ties on the highest ID. Nil if none is active.
func SelectCurrentLoan(records []model.BorrowRecord, bookID int64) *model.BorrowRecord {
	var current *model.BorrowRecord
	for i := range records {
		r := &records[i]
		if r.BookID != bookID || !r.IsActive() {
			continue
		}
		if current == nil ||
			r.BorrowDate.After(current.BorrowDate) ||
			(r.BorrowDate.Equal(current.BorrowDate) && r.ID > current.ID) {
			current = r
		}
	}
	return current
}

// AssessLoan computes the fee owed on a single loan at now.
func AssessLoan(loan *model.BorrowRecord, now time.Time) model.FeeAssessment {
	days := DaysOverdue(loan.DueDate, now)
	if days == 0 {
		return model.NotOverdue()
	}
	return model.FeeAssessment{
		FeeAmount:   FeeForDays(days),
		DaysOverdue: days,
		Status:      model.FeeStatusCalculated,
	}
}

// Assess computes the fee owed on the patron's current loan of bookID.
func Assess(records []model.BorrowRecord, bookID int64, now time.Time) model.FeeAssessment {
	loan := SelectCurrentLoan(records, bookID)
	if loan == nil {
		return model.NoActiveRecord()
	}
	return AssessLoan(loan, now)
}

package model

import "github.com/shopspring/decimal"

const (
	LoanPeriodDays = 14
	MaxActiveLoans = 5
	FirstTierDays  = 7
	HoursPerDay    = 24
	DateLayout     = "2006-01-02"
)

const (
	HistoryBorrowed = "borrowed"
	HistoryReturned = "returned"
)

const (
	LockPrefixPatron = "patron:"
	LockPrefixBook   = "book:"
)

var (
	FirstTierDailyRate  = decimal.NewFromFloat(0.50)
	SecondTierDailyRate = decimal.NewFromFloat(1.00)
	MaxFeePerLoan       = decimal.NewFromInt(15)
)

// FeeStatus labels the outcome of a fee assessment.
type FeeStatus string

const (
	FeeStatusNoActiveRecord FeeStatus = "no active record"
	FeeStatusNotOverdue     FeeStatus = "not overdue"
	FeeStatusCalculated     FeeStatus = "calculated"
)

package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"library-backend/internal/domains/circulation/model"
)

// GetPatronStatus builds the patron's loan report. Failures are reported
// through the report's Error field, never as a Go error.
func (s *CirculationService) GetPatronStatus(ctx context.Context, patronID string) *model.StatusReport {
	if err := model.ValidatePatronID(patronID); err != nil {
		return model.NewErrorReport(patronID, model.MsgInvalidPatronID)
	}

	records, err := s.store.GetPatronBorrowedBooks(ctx, patronID)
	if err != nil {
		log.Error().Err(err).Str("patron_id", patronID).Msg("failed to load patron records")
		return model.NewErrorReport(patronID, model.MsgLoadDBError)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].BorrowDate.Equal(records[j].BorrowDate) {
			return records[i].BorrowDate.After(records[j].BorrowDate)
		}
		return records[i].ID > records[j].ID
	})

	now := s.now()
	report := &model.StatusReport{
		PatronID:          patronID,
		CurrentlyBorrowed: make([]model.BorrowedBook, 0),
		TotalFeesDue:      decimal.Zero,
		History:           make([]model.HistoryEntry, 0, len(records)),
	}

	for i := range records {
		r := &records[i]

		report.History = append(report.History, model.HistoryEntry{
			BookID:     r.BookID,
			Title:      r.Title,
			Author:     r.Author,
			BorrowDate: r.BorrowDate,
			DueDate:    r.DueDate,
			ReturnDate: r.ReturnDate,
			Status:     r.HistoryStatus(),
		})

		if !r.IsActive() {
			continue
		}

		fee := AssessLoan(r, now)
		report.CurrentlyBorrowed = append(report.CurrentlyBorrowed, model.BorrowedBook{
			BookID:      r.BookID,
			Title:       r.Title,
			Author:      r.Author,
			BorrowDate:  r.BorrowDate,
			DueDate:     r.DueDate,
			DaysOverdue: fee.DaysOverdue,
			LateFee:     fee.FeeAmount,
			IsOverdue:   fee.IsOverdue(),
		})

		if fee.IsOverdue() {
			report.TotalFeesDue = report.TotalFeesDue.Add(fee.FeeAmount)
			report.BooksOverdue++
		}
	}

	report.TotalFeesDue = report.TotalFeesDue.Round(2)
	return report
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/circulation/model"
	"library-backend/internal/infrastructure/metrics"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/storage"
)

// =====================================================
// BORROW
// =====================================================

// BorrowBook lends one copy of bookID to the patron for the standard loan period.
func (s *CirculationService) BorrowBook(ctx context.Context, patronID string, bookID int64) (result *model.BorrowResult, err error) {
	defer func() { metrics.RecordCirculation("borrow", err == nil) }()

	// Step 1: Validate patron
	if err := model.ValidatePatronID(patronID); err != nil {
		return nil, apperror.Validation(model.MsgInvalidPatronID)
	}

	// Step 2: Serialize with other borrows/returns of this patron or book
	unlock, err := s.lockLoan(ctx, patronID, bookID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Step 3: Check and mutate as one unit
	var record *model.BorrowRecord
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Store) error {
		book, err := tx.GetBookByID(ctx, bookID)
		if err != nil {
			if errors.Is(err, storage.ErrBookNotFound) {
				return apperror.NotFound(model.MsgBookNotFound)
			}
			return apperror.Persistence(model.MsgLookupDBError, err)
		}

		if !book.IsAvailable() {
			return apperror.State(model.MsgBookUnavailable, nil)
		}

		active, err := tx.GetPatronBorrowCount(ctx, patronID)
		if err != nil {
			return apperror.Persistence(model.MsgLoadDBError, err)
		}
		if active >= model.MaxActiveLoans {
			return apperror.Limit(model.MsgBorrowLimitReached)
		}

		now := s.now()
		record = &model.BorrowRecord{
			PatronID:   patronID,
			BookID:     bookID,
			BorrowDate: now,
			DueDate:    now.AddDate(0, 0, model.LoanPeriodDays),
		}
		if err := tx.InsertBorrowRecord(ctx, record); err != nil {
			return apperror.Persistence(model.MsgBorrowDBError, err)
		}

		if err := tx.UpdateBookAvailability(ctx, bookID, -1); err != nil {
			return apperror.Persistence(model.MsgUpdateDBError, err)
		}

		record.Title = book.Title
		record.Author = book.Author
		return nil
	})
	if err != nil {
		err = asPersistence(err, model.MsgBorrowDBError)
		if apperror.KindOf(err) == apperror.KindPersistence {
			log.Error().Err(err).Str("patron_id", patronID).Int64("book_id", bookID).Msg("borrow failed")
		}
		return nil, err
	}

	log.Info().
		Str("patron_id", patronID).
		Int64("book_id", bookID).
		Int64("record_id", record.ID).
		Time("due_date", record.DueDate).
		Msg("book borrowed")

	return &model.BorrowResult{
		Message: fmt.Sprintf(model.MsgBorrowSuccess, record.Title, record.DueDate.Format(model.DateLayout)),
		Record:  record,
	}, nil
}

// =====================================================
// RETURN
// =====================================================

// ReturnBook closes the patron's current loan of bookID and reports any late fee.
func (s *CirculationService) ReturnBook(ctx context.Context, patronID string, bookID int64) (result *model.ReturnResult, err error) {
	defer func() { metrics.RecordCirculation("return", err == nil) }()

	// Step 1: Validate patron
	if err := model.ValidatePatronID(patronID); err != nil {
		return nil, apperror.Validation(model.MsgInvalidPatronID)
	}

	// Step 2: Serialize
	unlock, err := s.lockLoan(ctx, patronID, bookID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Step 3: Close the loan and put the copy back
	var (
		title      string
		loan       *model.BorrowRecord
		assessment model.FeeAssessment
	)
	now := s.now()
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Store) error {
		book, err := tx.GetBookByID(ctx, bookID)
		if err != nil {
			if errors.Is(err, storage.ErrBookNotFound) {
				return apperror.NotFound(model.MsgBookNotFound)
			}
			return apperror.Persistence(model.MsgLookupDBError, err)
		}
		title = book.Title

		records, err := tx.GetPatronBorrowedBooks(ctx, patronID)
		if err != nil {
			return apperror.Persistence(model.MsgLoadDBError, err)
		}

		loan = SelectCurrentLoan(records, bookID)
		if loan == nil {
			return apperror.NotFound(model.MsgNotBorrowed)
		}

		// Fee is based on the due date being closed out.
		assessment = AssessLoan(loan, now)

		if !book.CanAcceptReturn() {
			return apperror.State(model.MsgAvailabilityOverflow, nil)
		}

		if err := tx.UpdateBorrowRecordReturnDate(ctx, loan.ID, now); err != nil {
			if errors.Is(err, storage.ErrNoActiveRecord) {
				return apperror.NotFound(model.MsgNotBorrowed)
			}
			return apperror.Persistence(model.MsgReturnDBError, err)
		}

		if err := tx.UpdateBookAvailability(ctx, bookID, 1); err != nil {
			if errors.Is(err, storage.ErrAvailabilityOutOfRange) {
				return apperror.State(model.MsgAvailabilityOverflow, err)
			}
			return apperror.Persistence(model.MsgUpdateDBError, err)
		}
		return nil
	})
	if err != nil {
		err = asPersistence(err, model.MsgReturnDBError)
		if kind := apperror.KindOf(err); kind == apperror.KindPersistence || kind == apperror.KindState {
			log.Error().Err(err).Str("patron_id", patronID).Int64("book_id", bookID).Msg("return failed")
		}
		return nil, err
	}

	message := fmt.Sprintf(model.MsgReturnSuccess, title)
	if assessment.IsOverdue() {
		message += fmt.Sprintf(model.MsgReturnLateFee, assessment.DaysOverdue, assessment.FeeAmount.StringFixed(2))
	} else {
		message += model.MsgReturnNoLateFee
	}

	log.Info().
		Str("patron_id", patronID).
		Int64("book_id", bookID).
		Int64("record_id", loan.ID).
		Int("days_overdue", assessment.DaysOverdue).
		Str("late_fee", assessment.FeeAmount.StringFixed(2)).
		Msg("book returned")

	return &model.ReturnResult{
		Message:     message,
		RecordID:    loan.ID,
		DaysOverdue: assessment.DaysOverdue,
		LateFee:     assessment.FeeAmount,
		ReturnedAt:  now,
	}, nil
}

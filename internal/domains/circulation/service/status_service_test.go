package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/circulation/model"
	"library-backend/internal/infrastructure/lock"
	"library-backend/internal/storage/mocks"
)

func TestGetPatronStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid patron gives error report", func(t *testing.T) {
		f := newFixture(t)

		report := f.svc.GetPatronStatus(ctx, "12ab56")

		assert.Equal(t, model.MsgInvalidPatronID, report.Error)
		assert.Empty(t, report.CurrentlyBorrowed)
		assert.NotNil(t, report.CurrentlyBorrowed)
		assert.Empty(t, report.History)
		assert.True(t, report.TotalFeesDue.IsZero())
		assert.Equal(t, 0, report.BooksOverdue)
	})

	t.Run("patron with no loans", func(t *testing.T) {
		f := newFixture(t)

		report := f.svc.GetPatronStatus(ctx, "123456")

		assert.Empty(t, report.Error)
		assert.Empty(t, report.CurrentlyBorrowed)
		assert.Equal(t, "0.00", report.TotalFeesDue.StringFixed(2))
	})

	t.Run("sums per-loan fees without a global cap", func(t *testing.T) {
		f := newFixture(t)
		early := f.addBook(t, "Early", 1)
		late := f.addBook(t, "Late", 1)
		onTime := f.addBook(t, "OnTime", 1)
		returned := f.addBook(t, "Returned", 1)

		_, err := f.svc.BorrowBook(ctx, "123456", early.ID)
		require.NoError(t, err)
		_, err = f.svc.BorrowBook(ctx, "123456", late.ID)
		require.NoError(t, err)
		f.clock.Advance(24 * time.Hour)
		_, err = f.svc.BorrowBook(ctx, "123456", returned.ID)
		require.NoError(t, err)
		_, err = f.svc.ReturnBook(ctx, "123456", returned.ID)
		require.NoError(t, err)

		// Early and Late are 40 days overdue, capped at 15.00 each.
		f.clock.Advance(53 * 24 * time.Hour)
		_, err = f.svc.BorrowBook(ctx, "123456", onTime.ID)
		require.NoError(t, err)

		report := f.svc.GetPatronStatus(ctx, "123456")

		assert.Empty(t, report.Error)
		assert.Len(t, report.CurrentlyBorrowed, 3)
		assert.Equal(t, 2, report.BooksOverdue)
		assert.Equal(t, "30.00", report.TotalFeesDue.StringFixed(2))

		require.Len(t, report.History, 4)
		assert.Equal(t, "OnTime", report.History[0].Title)
		assert.Equal(t, model.HistoryBorrowed, report.History[0].Status)
		assert.Equal(t, "Returned", report.History[1].Title)
		assert.Equal(t, model.HistoryReturned, report.History[1].Status)

		for _, b := range report.CurrentlyBorrowed {
			assert.False(t, b.DueDate.IsZero())
			if b.Title == "OnTime" {
				assert.False(t, b.IsOverdue)
				assert.True(t, b.LateFee.IsZero())
			}
		}
	})

	t.Run("storage failure is reported in the report", func(t *testing.T) {
		store := new(mocks.Store)
		store.On("GetPatronBorrowedBooks", ctx, "123456").Return(nil, errors.New("timeout"))
		svc := NewService(store, lock.NewLocalLocker())

		report := svc.GetPatronStatus(ctx, "123456")

		assert.Equal(t, model.MsgLoadDBError, report.Error)
		assert.Empty(t, report.History)
	})

	t.Run("history ordered newest first regardless of storage order", func(t *testing.T) {
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		store := new(mocks.Store)
		store.On("GetPatronBorrowedBooks", ctx, "123456").Return([]model.BorrowRecord{
			{ID: 1, BookID: 1, Title: "A", BorrowDate: base, DueDate: base.AddDate(0, 0, 14)},
			{ID: 3, BookID: 3, Title: "C", BorrowDate: base.AddDate(0, 0, 1), DueDate: base.AddDate(0, 0, 15)},
			{ID: 2, BookID: 2, Title: "B", BorrowDate: base.AddDate(0, 0, 1), DueDate: base.AddDate(0, 0, 15)},
		}, nil)
		svc := NewService(store, lock.NewLocalLocker(), WithClock(func() time.Time { return base.AddDate(0, 0, 2) }))

		report := svc.GetPatronStatus(ctx, "123456")

		require.Len(t, report.History, 3)
		assert.Equal(t, []string{"C", "B", "A"}, []string{report.History[0].Title, report.History[1].Title, report.History[2].Title})
	})
}

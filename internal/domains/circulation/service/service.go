package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"library-backend/internal/domains/circulation/model"
	"library-backend/internal/infrastructure/lock"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/storage"
)

const msgBusy = "The library system is busy. Please try again."

type CirculationService struct {
	store  storage.Store
	locker lock.Locker
	now    func() time.Time
}

var _ ServiceInterface = (*CirculationService)(nil)

type Option func(*CirculationService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *CirculationService) {
		s.now = now
	}
}

func NewService(store storage.Store, locker lock.Locker, opts ...Option) *CirculationService {
	s := &CirculationService{
		store:  store,
		locker: locker,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CalculateLateFee assesses the fee currently owed on the patron's loan of bookID.
func (s *CirculationService) CalculateLateFee(ctx context.Context, patronID string, bookID int64) (*model.FeeAssessment, error) {
	if err := model.ValidatePatronID(patronID); err != nil {
		return nil, apperror.Validation(model.MsgInvalidPatronID)
	}

	records, err := s.store.GetPatronBorrowedBooks(ctx, patronID)
	if err != nil {
		return nil, apperror.Persistence(model.MsgLoadDBError, err)
	}

	assessment := Assess(records, bookID, s.now())
	return &assessment, nil
}

// lockLoan serializes every check-then-act sequence touching this patron or book.
func (s *CirculationService) lockLoan(ctx context.Context, patronID string, bookID int64) (func(), error) {
	unlock, err := lock.LockAll(ctx, s.locker,
		model.LockPrefixPatron+patronID,
		model.LockPrefixBook+strconv.FormatInt(bookID, 10),
	)
	if err != nil {
		return nil, apperror.New(apperror.KindInternal, msgBusy, err)
	}
	return unlock, nil
}

// asPersistence leaves application errors untouched and wraps anything
// else, such as a failed commit, as a persistence failure.
func asPersistence(err error, message string) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Persistence(message, err)
}

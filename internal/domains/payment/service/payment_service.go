package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	bookRepository "library-backend/internal/domains/book/repository"
	circulationModel "library-backend/internal/domains/circulation/model"
	"library-backend/internal/domains/payment/gateway"
	"library-backend/internal/domains/payment/model"
	"library-backend/internal/infrastructure/metrics"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/storage"
)

var errEmptyGatewayResponse = errors.New("gateway returned no response")

type PaymentService struct {
	fees    FeeCalculator
	books   bookRepository.RepositoryInterface
	gateway gateway.Gateway
}

var _ ServiceInterface = (*PaymentService)(nil)

func NewService(fees FeeCalculator, books bookRepository.RepositoryInterface, gw gateway.Gateway) *PaymentService {
	return &PaymentService{
		fees:    fees,
		books:   books,
		gateway: gw,
	}
}

// =====================================================
// PAY LATE FEES
// =====================================================

func (s *PaymentService) PayLateFees(ctx context.Context, patronID string, bookID int64) (*model.PaymentTransaction, error) {
	// Step 1: Validate patron
	if err := circulationModel.ValidatePatronID(patronID); err != nil {
		return nil, apperror.Validation(circulationModel.MsgInvalidPatronID)
	}

	// Step 2: Assess the fee owed right now
	fee, err := s.fees.CalculateLateFee(ctx, patronID, bookID)
	if err != nil {
		return nil, err
	}

	txn := &model.PaymentTransaction{
		PatronID: patronID,
		BookID:   bookID,
		Amount:   fee.FeeAmount,
	}

	if !fee.FeeAmount.IsPositive() {
		return s.fail(txn, apperror.State(model.MsgNoLateFees, nil))
	}

	// Step 3: Book is needed for the charge description
	book, err := s.books.GetBookByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, storage.ErrBookNotFound) {
			return s.fail(txn, apperror.NotFound(circulationModel.MsgBookNotFound))
		}
		return s.fail(txn, apperror.Persistence(circulationModel.MsgLookupDBError, err))
	}

	// Step 4: Charge
	resp, err := callGateway(func() (*gateway.ChargeResponse, error) {
		return s.gateway.ProcessPayment(ctx, gateway.ChargeRequest{
			PatronID:    patronID,
			BookID:      bookID,
			Amount:      fee.FeeAmount,
			Description: fmt.Sprintf(model.PaymentDescription, book.Title),
		})
	})
	if err != nil {
		metrics.RecordGatewayCall("charge", metrics.OutcomeError)
		log.Error().Err(err).Str("patron_id", patronID).Int64("book_id", bookID).Msg("payment gateway error")
		return s.fail(txn, apperror.Gateway(fmt.Sprintf(model.MsgPaymentError, err), err))
	}

	if !resp.Success {
		metrics.RecordGatewayCall("charge", metrics.OutcomeFailure)
		log.Warn().Str("patron_id", patronID).Str("reason", resp.Message).Msg("late fee payment declined")
		return s.fail(txn, apperror.Declined(fmt.Sprintf(model.MsgPaymentFailed, resp.Message)))
	}

	// Step 5: An accepted charge we cannot reference cannot be refunded or reconciled
	if resp.TransactionID == "" {
		metrics.RecordGatewayCall("charge", metrics.OutcomeError)
		log.Error().Str("patron_id", patronID).Msg("gateway accepted charge without transaction id")
		return s.fail(txn, apperror.Gateway(model.MsgPaymentNoTxnID, nil))
	}

	metrics.RecordGatewayCall("charge", metrics.OutcomeSuccess)
	metrics.RecordLateFeeCharged(fee.FeeAmount)

	txn.TransactionID = resp.TransactionID
	txn.Success = true
	txn.Message = fmt.Sprintf(model.MsgPaymentSuccess, fee.FeeAmount.StringFixed(2), book.Title, resp.TransactionID)

	log.Info().
		Str("patron_id", patronID).
		Int64("book_id", bookID).
		Str("amount", fee.FeeAmount.StringFixed(2)).
		Str("transaction_id", resp.TransactionID).
		Msg("late fee payment")

	return txn, nil
}

func (s *PaymentService) fail(txn *model.PaymentTransaction, err error) (*model.PaymentTransaction, error) {
	txn.Success = false
	txn.Message = apperror.Message(err)
	return txn, err
}

// =====================================================
// REFUND
// =====================================================

func (s *PaymentService) RefundLateFeePayment(ctx context.Context, transactionID string, amount decimal.Decimal) (*model.RefundResult, error) {
	// Step 1: Validate before touching the gateway
	req := model.RefundRequest{TransactionID: transactionID, Amount: amount}
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	result := &model.RefundResult{
		TransactionID: transactionID,
		Amount:        amount,
	}

	// Step 2: Refund
	resp, err := callGateway(func() (*gateway.RefundResponse, error) {
		return s.gateway.RefundPayment(ctx, gateway.RefundRequest{
			TransactionID: transactionID,
			Amount:        amount,
		})
	})
	if err != nil {
		metrics.RecordGatewayCall("refund", metrics.OutcomeError)
		log.Error().Err(err).Str("transaction_id", transactionID).Msg("refund gateway error")
		return s.failRefund(result, apperror.Gateway(fmt.Sprintf(model.MsgRefundError, err), err))
	}

	if !resp.Success {
		metrics.RecordGatewayCall("refund", metrics.OutcomeFailure)
		log.Warn().Str("transaction_id", transactionID).Str("reason", resp.Message).Msg("refund declined")
		return s.failRefund(result, apperror.Declined(fmt.Sprintf(model.MsgRefundFailed, resp.Message)))
	}

	metrics.RecordGatewayCall("refund", metrics.OutcomeSuccess)

	result.RefundID = resp.RefundID
	result.Success = true
	result.Message = fmt.Sprintf(model.MsgRefundSuccess, resp.Message, transactionID)

	log.Info().
		Str("transaction_id", transactionID).
		Str("refund_id", resp.RefundID).
		Str("amount", amount.StringFixed(2)).
		Msg("late fee refund")

	return result, nil
}

func (s *PaymentService) failRefund(result *model.RefundResult, err error) (*model.RefundResult, error) {
	result.Success = false
	result.Message = apperror.Message(err)
	return result, err
}

// =====================================================
// HELPERS
// =====================================================

// callGateway turns a panic or an empty response into an ordinary error.
func callGateway[T any](fn func() (*T, error)) (resp *T, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("gateway panic: %v", r)
		}
	}()

	resp, err = fn()
	if err == nil && resp == nil {
		err = errEmptyGatewayResponse
	}
	return resp, err
}

package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// SIMULATED GATEWAY
// =====================================================

// SimulatedConfig drives the in-process gateway used outside production.
type SimulatedConfig struct {
	DeclineAbove decimal.Decimal // charges above this amount are declined
	Latency      time.Duration
}

type charge struct {
	amount   decimal.Decimal
	refunded decimal.Decimal
}

// SimulatedGateway approves charges up to a limit and remembers them so
// refunds can be checked against the original amount.
type SimulatedGateway struct {
	cfg SimulatedConfig
	now func() time.Time

	mu      sync.Mutex
	charges map[string]*charge
}

var _ Gateway = (*SimulatedGateway)(nil)

func NewSimulatedGateway(cfg SimulatedConfig) *SimulatedGateway {
	return &SimulatedGateway{
		cfg:     cfg,
		now:     time.Now,
		charges: make(map[string]*charge),
	}
}

func (g *SimulatedGateway) ProcessPayment(ctx context.Context, req ChargeRequest) (*ChargeResponse, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return &ChargeResponse{Success: false, Message: "Invalid amount"}, nil
	}
	if req.BookID <= 0 {
		return &ChargeResponse{Success: false, Message: "Charge is not linked to a loan"}, nil
	}
	if g.cfg.DeclineAbove.IsPositive() && req.Amount.GreaterThan(g.cfg.DeclineAbove) {
		return &ChargeResponse{Success: false, Message: "Payment declined: amount exceeds limit"}, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// Same patron paying twice in one second still gets a distinct ID.
	txnID := fmt.Sprintf("txn_%s_%d", req.PatronID, g.now().Unix())
	for n := 2; g.charges[txnID] != nil; n++ {
		txnID = fmt.Sprintf("txn_%s_%d_%d", req.PatronID, g.now().Unix(), n)
	}
	g.charges[txnID] = &charge{amount: req.Amount, refunded: decimal.Zero}

	return &ChargeResponse{
		Success:       true,
		TransactionID: txnID,
		Message:       "Payment processed successfully",
	}, nil
}

func (g *SimulatedGateway) RefundPayment(ctx context.Context, req RefundRequest) (*RefundResponse, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	if !strings.HasPrefix(req.TransactionID, "txn_") {
		return &RefundResponse{Success: false, Message: "Invalid transaction ID"}, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.charges[req.TransactionID]
	if !ok {
		return &RefundResponse{Success: false, Message: "Transaction not found"}, nil
	}
	if c.refunded.Add(req.Amount).GreaterThan(c.amount) {
		return &RefundResponse{Success: false, Message: "Refund exceeds original charge"}, nil
	}
	c.refunded = c.refunded.Add(req.Amount)

	return &RefundResponse{
		Success:  true,
		RefundID: "rfd_" + uuid.NewString(),
		Message:  fmt.Sprintf("Refund of $%s processed successfully", req.Amount.StringFixed(2)),
	}, nil
}

func (g *SimulatedGateway) wait(ctx context.Context) error {
	if g.cfg.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.cfg.Latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

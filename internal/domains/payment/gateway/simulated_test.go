package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway() *SimulatedGateway {
	g := NewSimulatedGateway(SimulatedConfig{DeclineAbove: decimal.NewFromInt(100)})
	g.now = func() time.Time { return time.Unix(1700000000, 0) }
	return g
}

func TestSimulatedGateway_ProcessPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("approves and issues txn id", func(t *testing.T) {
		g := newTestGateway()

		resp, err := g.ProcessPayment(ctx, ChargeRequest{PatronID: "123456", BookID: 1, Amount: decimal.NewFromFloat(6.5)})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "txn_123456_1700000000", resp.TransactionID)
	})

	t.Run("repeated charge in same second gets a distinct id", func(t *testing.T) {
		g := newTestGateway()

		first, err := g.ProcessPayment(ctx, ChargeRequest{PatronID: "123456", BookID: 1, Amount: decimal.NewFromInt(1)})
		require.NoError(t, err)
		second, err := g.ProcessPayment(ctx, ChargeRequest{PatronID: "123456", BookID: 1, Amount: decimal.NewFromInt(1)})
		require.NoError(t, err)

		assert.NotEqual(t, first.TransactionID, second.TransactionID)
	})

	t.Run("declines above limit", func(t *testing.T) {
		g := newTestGateway()

		resp, err := g.ProcessPayment(ctx, ChargeRequest{PatronID: "123456", BookID: 1, Amount: decimal.NewFromInt(101)})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Empty(t, resp.TransactionID)
	})

	t.Run("declines charge without a loan", func(t *testing.T) {
		g := newTestGateway()

		resp, err := g.ProcessPayment(ctx, ChargeRequest{PatronID: "123456", Amount: decimal.NewFromInt(5)})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Charge is not linked to a loan", resp.Message)
	})

	t.Run("honours cancelled context", func(t *testing.T) {
		g := NewSimulatedGateway(SimulatedConfig{Latency: time.Second})
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := g.ProcessPayment(cctx, ChargeRequest{PatronID: "123456", BookID: 1, Amount: decimal.NewFromInt(1)})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSimulatedGateway_RefundPayment(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway()
	charged, err := g.ProcessPayment(ctx, ChargeRequest{PatronID: "654321", BookID: 2, Amount: decimal.NewFromInt(10)})
	require.NoError(t, err)

	t.Run("partial refund", func(t *testing.T) {
		resp, err := g.RefundPayment(ctx, RefundRequest{TransactionID: charged.TransactionID, Amount: decimal.NewFromInt(4)})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Contains(t, resp.Message, "$4.00")
		assert.NotEmpty(t, resp.RefundID)
	})

	t.Run("cannot refund more than remains", func(t *testing.T) {
		resp, err := g.RefundPayment(ctx, RefundRequest{TransactionID: charged.TransactionID, Amount: decimal.NewFromInt(7)})

		require.NoError(t, err)
		assert.False(t, resp.Success)
	})

	t.Run("unknown transaction is declined", func(t *testing.T) {
		resp, err := g.RefundPayment(ctx, RefundRequest{TransactionID: "txn_000000_1", Amount: decimal.NewFromInt(1)})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Transaction not found", resp.Message)
	})
}

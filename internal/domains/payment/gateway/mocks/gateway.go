package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"library-backend/internal/domains/payment/gateway"
)

// Gateway is a testify mock of gateway.Gateway.
type Gateway struct {
	mock.Mock
}

var _ gateway.Gateway = (*Gateway)(nil)

func (m *Gateway) ProcessPayment(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResponse, error) {
	args := m.Called(ctx, req)
	if fn, ok := args.Get(0).(func(context.Context, gateway.ChargeRequest) (*gateway.ChargeResponse, error)); ok {
		return fn(ctx, req)
	}
	var resp *gateway.ChargeResponse
	if v := args.Get(0); v != nil {
		resp = v.(*gateway.ChargeResponse)
	}
	return resp, args.Error(1)
}

func (m *Gateway) RefundPayment(ctx context.Context, req gateway.RefundRequest) (*gateway.RefundResponse, error) {
	args := m.Called(ctx, req)
	if fn, ok := args.Get(0).(func(context.Context, gateway.RefundRequest) (*gateway.RefundResponse, error)); ok {
		return fn(ctx, req)
	}
	var resp *gateway.RefundResponse
	if v := args.Get(0); v != nil {
		resp = v.(*gateway.RefundResponse)
	}
	return resp, args.Error(1)
}

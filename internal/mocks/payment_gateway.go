package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"handypro/internal/service/payment"
)

type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) GeneratePayment(ctx context.Context, amountMillimes int64, trackingID, successLink, failLink string) (*payment.GatewayPayment, error) {
	args := m.Called(ctx, amountMillimes, trackingID, successLink, failLink)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.GatewayPayment), args.Error(1)
}

func (m *PaymentGateway) VerifyPayment(ctx context.Context, paymentID string) (bool, error) {
	args := m.Called(ctx, paymentID)
	return args.Bool(0), args.Error(1)
}

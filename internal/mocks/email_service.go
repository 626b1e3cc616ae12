package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendRegistrationEmail(ctx context.Context, toEmail, username string) error {
	args := m.Called(ctx, toEmail, username)
	return args.Error(0)
}

func (m *EmailService) SendBookingRequestEmail(ctx context.Context, toEmail, providerName, customerName, serviceName string, bookingDate time.Time) error {
	args := m.Called(ctx, toEmail, providerName, customerName, serviceName, bookingDate)
	return args.Error(0)
}

func (m *EmailService) SendBookingStatusEmail(ctx context.Context, toEmail, customerName, serviceName, status string, bookingDate time.Time) error {
	args := m.Called(ctx, toEmail, customerName, serviceName, status, bookingDate)
	return args.Error(0)
}

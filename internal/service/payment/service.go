package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"handypro/internal/config"
	"handypro/internal/domain"
	"handypro/internal/repository"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrNotAllowed         = errors.New("booking does not belong to this customer")
	ErrNotConfirmed       = errors.New("payment requires a confirmed booking")
	ErrVerificationFailed = errors.New("payment verification failed")
)

type Service interface {
	// Initiate creates a gateway payment session and a PENDING payment
	// row. Only the booking's customer may pay, and only while the
	// booking is CONFIRMED.
	Initiate(ctx context.Context, bookingID, userID uuid.UUID) (*domain.PaymentInitiation, error)
	// Verify asks the gateway about the transaction. On success payment
	// and booking move to COMPLETED together; on failure only the
	// payment is marked FAILED and the booking stays payable. A booking
	// that is no longer CONFIRMED is not verifiable, so a second pending
	// transaction cannot be captured after the first one completed.
	Verify(ctx context.Context, bookingID, userID uuid.UUID, gatewayPaymentID string) error
	History(ctx context.Context, bookingID, userID uuid.UUID) ([]domain.Payment, error)
}

type service struct {
	bookingRepo repository.BookingRepository
	paymentRepo repository.PaymentRepository
	gateway     Gateway
	cfg         *config.Config
}

func NewService(bookingRepo repository.BookingRepository, paymentRepo repository.PaymentRepository, gateway Gateway, cfg *config.Config) Service {
	return &service{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		cfg:         cfg,
	}
}

func (s *service) ownedBooking(ctx context.Context, bookingID, userID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrNotAllowed
	}
	return booking, nil
}

func (s *service) Initiate(ctx context.Context, bookingID, userID uuid.UUID) (*domain.PaymentInitiation, error) {
	booking, err := s.ownedBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingConfirmed {
		return nil, ErrNotConfirmed
	}

	// The gateway bills in millimes.
	amountMillimes := int64(math.Round(booking.TotalPrice * 1000))
	trackingID := fmt.Sprintf("booking_%s_%d_%s_payment", bookingID, time.Now().Unix(), userID)
	successLink := fmt.Sprintf("%s/dashboard/bookings/%s?payment=success", s.cfg.FrontendURL, bookingID)
	failLink := fmt.Sprintf("%s/dashboard/bookings/%s?payment=failed", s.cfg.FrontendURL, bookingID)

	gw, err := s.gateway.GeneratePayment(ctx, amountMillimes, trackingID, successLink, failLink)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:            uuid.New(),
		BookingID:     bookingID,
		Amount:        booking.TotalPrice,
		Status:        domain.PaymentPending,
		PaymentMethod: "ONLINE",
		TransactionID: gw.PaymentID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return &domain.PaymentInitiation{
		PaymentID: payment.ID,
		PayURL:    gw.PayURL,
		Gateway:   gw.PaymentID,
	}, nil
}

func (s *service) Verify(ctx context.Context, bookingID, userID uuid.UUID, gatewayPaymentID string) error {
	booking, err := s.ownedBooking(ctx, bookingID, userID)
	if err != nil {
		return err
	}
	if booking.Status != domain.BookingConfirmed {
		return ErrNotConfirmed
	}

	success, err := s.gateway.VerifyPayment(ctx, gatewayPaymentID)
	if err != nil {
		return err
	}

	if !success {
		if err := s.paymentRepo.MarkFailed(ctx, booking.ID, gatewayPaymentID); err != nil {
			return err
		}
		return ErrVerificationFailed
	}

	if err := s.paymentRepo.CompleteWithBooking(ctx, booking.ID, gatewayPaymentID); err != nil {
		// Lost the race against another verification or a transition.
		if errors.Is(err, repository.ErrStatusConflict) {
			return ErrNotConfirmed
		}
		return err
	}
	return nil
}

func (s *service) History(ctx context.Context, bookingID, userID uuid.UUID) ([]domain.Payment, error) {
	booking, err := s.ownedBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByBooking(ctx, booking.ID)
}

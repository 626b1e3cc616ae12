package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"handypro/internal/config"
	"handypro/internal/domain"
	"handypro/internal/mocks"
	"handypro/internal/repository"
	"handypro/internal/service/booking"
)

func testConfig() *config.Config {
	return &config.Config{
		ServiceHoursStart:  9,
		ServiceHoursEnd:    17,
		CancellationNotice: 24 * time.Hour,
	}
}

// validBookingDate returns a future date guaranteed to fall inside
// service hours.
func validBookingDate() time.Time {
	d := time.Now().AddDate(0, 0, 7)
	return time.Date(d.Year(), d.Month(), d.Day(), 10, 0, 0, 0, d.Location())
}

type bookingFixture struct {
	bookingRepo *mocks.BookingRepository
	serviceRepo *mocks.ServiceRepository
	reviewRepo  *mocks.ReviewRepository
	userRepo    *mocks.UserRepository
	emailSvc    *mocks.EmailService
	notifSvc    *mocks.NotificationService
	svc         booking.Service
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookingRepo: new(mocks.BookingRepository),
		serviceRepo: new(mocks.ServiceRepository),
		reviewRepo:  new(mocks.ReviewRepository),
		userRepo:    new(mocks.UserRepository),
		emailSvc:    new(mocks.EmailService),
		notifSvc:    new(mocks.NotificationService),
	}
	f.svc = booking.NewService(f.bookingRepo, f.serviceRepo, f.reviewRepo, f.userRepo, nil, f.emailSvc, testConfig())
	f.svc.SetNotificationService(f.notifSvc)
	return f
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	providerID := uuid.New()
	serviceID := uuid.New()

	svcRow := &domain.Service{
		ID:         serviceID,
		ProviderID: providerID,
		Name:       "Pipe repair",
		Price:      120.5,
	}

	t.Run("creates a pending booking at the service price", func(t *testing.T) {
		f := newBookingFixture()

		f.serviceRepo.On("GetByID", ctx, serviceID).Return(svcRow, nil).Once()
		f.bookingRepo.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.UserID == userID &&
				b.ProviderID == providerID &&
				b.Status == domain.BookingPending &&
				b.TotalPrice == 120.5
		})).Return(nil).Once()
		f.bookingRepo.On("GetDetail", ctx, mock.AnythingOfType("uuid.UUID")).Return(&domain.BookingDetail{
			Booking: domain.Booking{Status: domain.BookingPending},
			Service: domain.ServiceSummary{Name: "Pipe repair"},
			User:    domain.UserSummary{Username: "alice"},
		}, nil).Once()
		f.notifSvc.On("NotifyBookingEvent", mock.Anything, providerID, domain.NotifBookingRequested, "Pipe repair", "alice").Return(nil).Maybe()
		f.userRepo.On("GetByID", mock.Anything, providerID).Return(&domain.User{ID: providerID, Email: "p@x.tn", Username: "bob"}, nil).Maybe()
		f.emailSvc.On("SendBookingRequestEmail", mock.Anything, "p@x.tn", "bob", "alice", "Pipe repair", mock.AnythingOfType("time.Time")).Return(nil).Maybe()

		detail, err := f.svc.Create(ctx, userID, domain.CreateBookingInput{
			ServiceID:   serviceID,
			BookingDate: validBookingDate(),
		})

		assert.NoError(t, err)
		assert.NotNil(t, detail)
		assert.Equal(t, domain.BookingPending, detail.Status)

		// Side effects run on their own goroutines.
		time.Sleep(50 * time.Millisecond)
		f.bookingRepo.AssertExpectations(t)
		f.serviceRepo.AssertExpectations(t)
	})

	t.Run("rejects a past date", func(t *testing.T) {
		f := newBookingFixture()

		detail, err := f.svc.Create(ctx, userID, domain.CreateBookingInput{
			ServiceID:   serviceID,
			BookingDate: time.Now().Add(-time.Hour),
		})

		assert.ErrorIs(t, err, booking.ErrPastDate)
		assert.Nil(t, detail)
	})

	t.Run("rejects a date outside service hours", func(t *testing.T) {
		f := newBookingFixture()

		d := time.Now().AddDate(0, 0, 7)
		late := time.Date(d.Year(), d.Month(), d.Day(), 22, 0, 0, 0, d.Location())

		detail, err := f.svc.Create(ctx, userID, domain.CreateBookingInput{
			ServiceID:   serviceID,
			BookingDate: late,
		})

		assert.ErrorIs(t, err, booking.ErrOutsideHours)
		assert.Nil(t, detail)
	})

	t.Run("rejects the closing hour itself", func(t *testing.T) {
		f := newBookingFixture()

		d := time.Now().AddDate(0, 0, 7)
		closing := time.Date(d.Year(), d.Month(), d.Day(), 17, 0, 0, 0, d.Location())

		_, err := f.svc.Create(ctx, userID, domain.CreateBookingInput{
			ServiceID:   serviceID,
			BookingDate: closing,
		})

		assert.ErrorIs(t, err, booking.ErrOutsideHours)
	})

	t.Run("unknown service", func(t *testing.T) {
		f := newBookingFixture()
		f.serviceRepo.On("GetByID", ctx, serviceID).Return(nil, nil).Once()

		detail, err := f.svc.Create(ctx, userID, domain.CreateBookingInput{
			ServiceID:   serviceID,
			BookingDate: validBookingDate(),
		})

		assert.ErrorIs(t, err, booking.ErrServiceNotFound)
		assert.Nil(t, detail)
	})
}

func TestBookingService_Transition(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	providerID := uuid.New()

	newBookingRow := func(status domain.BookingStatus, date time.Time) *domain.Booking {
		return &domain.Booking{
			ID:          uuid.New(),
			UserID:      userID,
			ProviderID:  providerID,
			ServiceID:   uuid.New(),
			BookingDate: date,
			Status:      status,
			TotalPrice:  80,
		}
	}

	expectDetail := func(f *bookingFixture, b *domain.Booking) {
		f.bookingRepo.On("GetDetail", mock.Anything, b.ID).Return(&domain.BookingDetail{
			Booking:  *b,
			Service:  domain.ServiceSummary{Name: "Cleaning"},
			Provider: domain.UserSummary{Username: "bob"},
			User:     domain.UserSummary{Username: "alice"},
		}, nil).Maybe()
		f.notifSvc.On("NotifyBookingEvent", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
		f.userRepo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(&domain.User{Email: "a@x.tn", Username: "alice"}, nil).Maybe()
		f.emailSvc.On("SendBookingStatusEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	}

	t.Run("provider confirms a pending booking", func(t *testing.T) {
		f := newBookingFixture()
		b := newBookingRow(domain.BookingPending, validBookingDate())

		f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()
		f.bookingRepo.On("UpdateStatus", ctx, b.ID, domain.BookingConfirmed, domain.BookingPending).Return(nil).Once()
		expectDetail(f, b)

		updated, err := f.svc.Transition(ctx, b.ID, providerID, domain.RoleProvider, domain.BookingConfirmed)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, updated.Status)
		time.Sleep(50 * time.Millisecond)
		f.bookingRepo.AssertExpectations(t)
	})

	t.Run("provider rejects a pending booking", func(t *testing.T) {
		f := newBookingFixture()
		b := newBookingRow(domain.BookingPending, validBookingDate())

		f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()
		f.bookingRepo.On("UpdateStatus", ctx, b.ID, domain.BookingRejected, domain.BookingPending).Return(nil).Once()
		expectDetail(f, b)

		updated, err := f.svc.Transition(ctx, b.ID, providerID, domain.RoleProvider, domain.BookingRejected)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingRejected, updated.Status)
	})

	t.Run("customer cannot confirm", func(t *testing.T) {
		f := newBookingFixture()
		b := newBookingRow(domain.BookingPending, validBookingDate())

		f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()

		_, err := f.svc.Transition(ctx, b.ID, userID, domain.RoleUser, domain.BookingConfirmed)

		assert.ErrorIs(t, err, booking.ErrNotAllowed)
	})

	t.Run("customer cancels a pending booking", func(t *testing.T) {
		f := newBookingFixture()
		b := newBookingRow(domain.BookingPending, validBookingDate())

		f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()
		f.bookingRepo.On("UpdateStatus", ctx, b.ID, domain.BookingCancelled, domain.BookingPending).Return(nil).Once()
		expectDetail(f, b)

		updated, err := f.svc.Transition(ctx, b.ID, userID, domain.RoleUser, domain.BookingCancelled)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, updated.Status)
	})

	t.Run("confirmed booking cancelled with enough notice", func(t *testing.T) {
		f := newBookingFixture()
		b := newBookingRow(domain.BookingConfirmed, validBookingDate())

		f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()
		f.bookingRepo.On("UpdateStatus", ctx, b.ID, domain.BookingCancelled, domain.BookingConfirmed).Return(nil).Once()
		expectDetail(f, b)

		_, err := f.svc.Transition(ctx, b.ID, userID, domain.RoleUser, domain.BookingCancelled)

		assert.NoError(t, err)
	})

	t.Run("confirmed booking too close to cancel", func(t *testing.T) {
		f := newBookingFixture()
		b := newBookingRow(domain.BookingConfirmed, time.Now().Add(2*time.Hour))

		f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()

		_, err := f.svc.Transition(ctx, b.ID, userID, domain.RoleUser, domain.BookingCancelled)

		assert.ErrorIs(t, err, booking.ErrCancellationNotice)
	})

	t.Run("either side completes a confirmed booking", func(t *testing.T) {
		for _, tc := range []struct {
			actorID uuid.UUID
			role    domain.UserRole
		}{
			{providerID, domain.RoleProvider},
			{userID, domain.RoleUser},
		} {
			f := newBookingFixture()
			b := newBookingRow(domain.BookingConfirmed, validBookingDate())

			f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()
			f.bookingRepo.On("UpdateStatus", ctx, b.ID, domain.BookingCompleted, domain.BookingConfirmed).Return(nil).Once()
			expectDetail(f, b)

			updated, err := f.svc.Transition(ctx, b.ID, tc.actorID, tc.role, domain.BookingCompleted)

			assert.NoError(t, err)
			assert.Equal(t, domain.BookingCompleted, updated.Status)
		}
	})

	t.Run("losing a concurrent status race is an invalid transition", func(t *testing.T) {
		f := newBookingFixture()
		b := newBookingRow(domain.BookingPending, validBookingDate())

		f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()
		f.bookingRepo.On("UpdateStatus", ctx, b.ID, domain.BookingConfirmed, domain.BookingPending).
			Return(repository.ErrStatusConflict).Once()

		_, err := f.svc.Transition(ctx, b.ID, providerID, domain.RoleProvider, domain.BookingConfirmed)

		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
		f.notifSvc.AssertNotCalled(t, "NotifyBookingEvent",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("terminal states refuse every move", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{
			domain.BookingCompleted, domain.BookingCancelled, domain.BookingRejected,
		} {
			f := newBookingFixture()
			b := newBookingRow(status, validBookingDate())

			f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()

			_, err := f.svc.Transition(ctx, b.ID, providerID, domain.RoleProvider, domain.BookingConfirmed)

			assert.ErrorIs(t, err, booking.ErrInvalidTransition, "from %s", status)
		}
	})

	t.Run("pending cannot jump straight to completed", func(t *testing.T) {
		f := newBookingFixture()
		b := newBookingRow(domain.BookingPending, validBookingDate())

		f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()

		_, err := f.svc.Transition(ctx, b.ID, providerID, domain.RoleProvider, domain.BookingCompleted)

		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})

	t.Run("stranger is rejected before role checks", func(t *testing.T) {
		f := newBookingFixture()
		b := newBookingRow(domain.BookingPending, validBookingDate())

		f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()

		_, err := f.svc.Transition(ctx, b.ID, uuid.New(), domain.RoleProvider, domain.BookingConfirmed)

		assert.ErrorIs(t, err, booking.ErrNotAllowed)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture()
		id := uuid.New()

		f.bookingRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := f.svc.Transition(ctx, id, providerID, domain.RoleProvider, domain.BookingConfirmed)

		assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	})
}

func TestBookingService_SubmitReview(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	providerID := uuid.New()
	serviceID := uuid.New()

	completed := func() *domain.Booking {
		return &domain.Booking{
			ID:         uuid.New(),
			UserID:     userID,
			ProviderID: providerID,
			ServiceID:  serviceID,
			Status:     domain.BookingCompleted,
		}
	}

	t.Run("stores the review and recomputes ratings", func(t *testing.T) {
		f := newBookingFixture()
		b := completed()

		f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()
		f.reviewRepo.On("ExistsForBooking", ctx, b.ID).Return(false, nil).Once()
		f.reviewRepo.On("CreateAndRecompute", ctx, mock.MatchedBy(func(r *domain.Review) bool {
			return r.BookingID == b.ID && r.ServiceID == serviceID && r.Rating == 5
		}), providerID).Return(nil).Once()

		review, err := f.svc.SubmitReview(ctx, b.ID, userID, domain.SubmitReviewInput{Rating: 5})

		assert.NoError(t, err)
		assert.NotNil(t, review)
		f.reviewRepo.AssertExpectations(t)
	})

	t.Run("rating out of range", func(t *testing.T) {
		f := newBookingFixture()

		for _, rating := range []int{0, 6, -1} {
			_, err := f.svc.SubmitReview(ctx, uuid.New(), userID, domain.SubmitReviewInput{Rating: rating})
			assert.ErrorIs(t, err, booking.ErrInvalidRating)
		}
	})

	t.Run("only the customer may review", func(t *testing.T) {
		f := newBookingFixture()
		b := completed()

		f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()

		_, err := f.svc.SubmitReview(ctx, b.ID, providerID, domain.SubmitReviewInput{Rating: 4})

		assert.ErrorIs(t, err, booking.ErrNotAllowed)
	})

	t.Run("booking must be completed", func(t *testing.T) {
		f := newBookingFixture()
		b := completed()
		b.Status = domain.BookingConfirmed

		f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()

		_, err := f.svc.SubmitReview(ctx, b.ID, userID, domain.SubmitReviewInput{Rating: 4})

		assert.ErrorIs(t, err, booking.ErrNotCompleted)
	})

	t.Run("one review per booking", func(t *testing.T) {
		f := newBookingFixture()
		b := completed()

		f.bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()
		f.reviewRepo.On("ExistsForBooking", ctx, b.ID).Return(true, nil).Once()

		_, err := f.svc.SubmitReview(ctx, b.ID, userID, domain.SubmitReviewInput{Rating: 4})

		assert.ErrorIs(t, err, booking.ErrAlreadyReviewed)
	})
}

func TestBookingService_ProviderLists(t *testing.T) {
	ctx := context.Background()
	providerID := uuid.New()

	t.Run("requests cover pending and confirmed", func(t *testing.T) {
		f := newBookingFixture()

		f.bookingRepo.On("ListByProvider", ctx, providerID, []domain.BookingStatus{
			domain.BookingPending, domain.BookingConfirmed,
		}).Return([]domain.BookingDetail{}, nil).Once()

		_, err := f.svc.ListRequests(ctx, providerID)
		assert.NoError(t, err)
		f.bookingRepo.AssertExpectations(t)
	})

	t.Run("history covers terminal states", func(t *testing.T) {
		f := newBookingFixture()

		f.bookingRepo.On("ListByProvider", ctx, providerID, []domain.BookingStatus{
			domain.BookingCompleted, domain.BookingCancelled, domain.BookingRejected,
		}).Return([]domain.BookingDetail{}, nil).Once()

		_, err := f.svc.History(ctx, providerID)
		assert.NoError(t, err)
		f.bookingRepo.AssertExpectations(t)
	})
}

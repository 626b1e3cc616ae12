package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"handypro/internal/config"
	"handypro/internal/domain"
	"handypro/internal/repository"
	"handypro/internal/service/email"
	"handypro/internal/service/notification"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrServiceNotFound    = errors.New("service not found")
	ErrNotAllowed         = errors.New("actor is not a party to this booking")
	ErrInvalidTransition  = errors.New("status transition not permitted from current state")
	ErrPastDate           = errors.New("booking date must be in the future")
	ErrOutsideHours       = errors.New("booking date is outside service hours")
	ErrCancellationNotice = errors.New("too late to cancel a confirmed booking")
	ErrNotCompleted       = errors.New("booking is not completed")
	ErrInvalidRating      = errors.New("rating must be an integer between 1 and 5")
	ErrAlreadyReviewed    = errors.New("booking already reviewed")
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateBookingInput) (*domain.BookingDetail, error)
	GetDetail(ctx context.Context, bookingID, actorID uuid.UUID) (*domain.BookingDetail, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetail, error)
	ListRequests(ctx context.Context, providerID uuid.UUID) ([]domain.BookingDetail, error)
	History(ctx context.Context, providerID uuid.UUID) ([]domain.BookingDetail, error)
	Stats(ctx context.Context, providerID uuid.UUID) (*domain.ProviderStats, error)
	Transition(ctx context.Context, bookingID, actorID uuid.UUID, actorRole domain.UserRole, target domain.BookingStatus) (*domain.Booking, error)
	SubmitReview(ctx context.Context, bookingID, userID uuid.UUID, input domain.SubmitReviewInput) (*domain.Review, error)
	SetNotificationService(notifSvc notification.Service)
}

// transitions lists, per current status, the reachable statuses and the
// roles allowed to request each move. Terminal states have no entry.
var transitions = map[domain.BookingStatus]map[domain.BookingStatus][]domain.UserRole{
	domain.BookingPending: {
		domain.BookingConfirmed: {domain.RoleProvider},
		domain.BookingRejected:  {domain.RoleProvider},
		domain.BookingCancelled: {domain.RoleUser},
	},
	domain.BookingConfirmed: {
		domain.BookingCompleted: {domain.RoleProvider, domain.RoleUser},
		domain.BookingCancelled: {domain.RoleUser, domain.RoleProvider},
	},
}

var notifTypeForStatus = map[domain.BookingStatus]domain.NotificationType{
	domain.BookingConfirmed: domain.NotifBookingConfirmed,
	domain.BookingRejected:  domain.NotifBookingRejected,
	domain.BookingCancelled: domain.NotifBookingCancelled,
	domain.BookingCompleted: domain.NotifBookingCompleted,
}

type service struct {
	bookingRepo repository.BookingRepository
	serviceRepo repository.ServiceRepository
	reviewRepo  repository.ReviewRepository
	userRepo    repository.UserRepository
	redis       *redis.Client
	emailSvc    email.Service
	notifSvc    notification.Service
	cfg         *config.Config
}

func NewService(bookingRepo repository.BookingRepository, serviceRepo repository.ServiceRepository, reviewRepo repository.ReviewRepository, userRepo repository.UserRepository, redisClient *redis.Client, emailSvc email.Service, cfg *config.Config) Service {
	return &service{
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		redis:       redisClient,
		emailSvc:    emailSvc,
		cfg:         cfg,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateBookingInput) (*domain.BookingDetail, error) {
	if !input.BookingDate.After(time.Now()) {
		return nil, ErrPastDate
	}
	hour := input.BookingDate.Hour()
	if hour < s.cfg.ServiceHoursStart || hour >= s.cfg.ServiceHoursEnd {
		return nil, ErrOutsideHours
	}

	svc, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	booking := &domain.Booking{
		ID:          uuid.New(),
		UserID:      userID,
		ProviderID:  svc.ProviderID,
		ServiceID:   svc.ID,
		BookingDate: input.BookingDate,
		Status:      domain.BookingPending,
		TotalPrice:  svc.Price,
		Notes:       input.Notes,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	detail, err := s.bookingRepo.GetDetail(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	s.notifyAsync(svc.ProviderID, domain.NotifBookingRequested, detail.Service.Name, detail.User.Username)
	go func() {
		provider, err := s.userRepo.GetByID(context.Background(), svc.ProviderID)
		if err != nil || provider == nil {
			return
		}
		err = s.emailSvc.SendBookingRequestEmail(context.Background(), provider.Email, provider.Username, detail.User.Username, detail.Service.Name, booking.BookingDate)
		if err != nil {
			log.Printf("Failed to send booking request email: %v", err)
		}
	}()

	return detail, nil
}

func (s *service) GetDetail(ctx context.Context, bookingID, actorID uuid.UUID) (*domain.BookingDetail, error) {
	detail, err := s.bookingRepo.GetDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrBookingNotFound
	}
	if detail.UserID != actorID && detail.Booking.ProviderID != actorID {
		return nil, ErrNotAllowed
	}
	return detail, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetail, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

func (s *service) ListRequests(ctx context.Context, providerID uuid.UUID) ([]domain.BookingDetail, error) {
	return s.bookingRepo.ListByProvider(ctx, providerID, []domain.BookingStatus{
		domain.BookingPending, domain.BookingConfirmed,
	})
}

func (s *service) History(ctx context.Context, providerID uuid.UUID) ([]domain.BookingDetail, error) {
	return s.bookingRepo.ListByProvider(ctx, providerID, []domain.BookingStatus{
		domain.BookingCompleted, domain.BookingCancelled, domain.BookingRejected,
	})
}

func (s *service) Stats(ctx context.Context, providerID uuid.UUID) (*domain.ProviderStats, error) {
	return s.bookingRepo.StatsForProvider(ctx, providerID)
}

func (s *service) Transition(ctx context.Context, bookingID, actorID uuid.UUID, actorRole domain.UserRole, target domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	allowedRoles, ok := transitions[booking.Status][target]
	if !ok {
		return nil, ErrInvalidTransition
	}

	if !s.actorOwnsSide(booking, actorID, actorRole) {
		return nil, ErrNotAllowed
	}
	if !roleAllowed(allowedRoles, actorRole) {
		return nil, ErrNotAllowed
	}

	if booking.Status == domain.BookingConfirmed && target == domain.BookingCancelled {
		if time.Until(booking.BookingDate) < s.cfg.CancellationNotice {
			return nil, ErrCancellationNotice
		}
	}

	// Compare-and-swap against the status just read; a concurrent
	// transition that wins the race leaves this one invalid.
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, target, booking.Status); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	booking.Status = target

	s.emitTransitionEffects(booking, actorRole, target)

	return booking, nil
}

func (s *service) actorOwnsSide(booking *domain.Booking, actorID uuid.UUID, actorRole domain.UserRole) bool {
	switch actorRole {
	case domain.RoleUser:
		return booking.UserID == actorID
	case domain.RoleProvider:
		return booking.ProviderID == actorID
	default:
		return false
	}
}

func roleAllowed(roles []domain.UserRole, role domain.UserRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// emitTransitionEffects notifies the counterparty and, for provider
// decisions, emails the customer. All best-effort.
func (s *service) emitTransitionEffects(booking *domain.Booking, actorRole domain.UserRole, target domain.BookingStatus) {
	notifType, ok := notifTypeForStatus[target]
	if !ok {
		return
	}

	recipientID := booking.UserID
	if actorRole == domain.RoleUser {
		recipientID = booking.ProviderID
	}

	detail, err := s.bookingRepo.GetDetail(context.Background(), booking.ID)
	if err != nil || detail == nil {
		log.Printf("Failed to load booking detail for side effects: %v", err)
		return
	}

	counterpartName := detail.User.Username
	if actorRole == domain.RoleUser {
		counterpartName = detail.Provider.Username
	}
	s.notifyAsync(recipientID, notifType, detail.Service.Name, counterpartName)

	if target == domain.BookingConfirmed || target == domain.BookingRejected {
		go func() {
			customer, err := s.userRepo.GetByID(context.Background(), booking.UserID)
			if err != nil || customer == nil {
				return
			}
			err = s.emailSvc.SendBookingStatusEmail(context.Background(), customer.Email, customer.Username, detail.Service.Name, string(target), booking.BookingDate)
			if err != nil {
				log.Printf("Failed to send booking status email: %v", err)
			}
		}()
	}
}

func (s *service) notifyAsync(recipientID uuid.UUID, notifType domain.NotificationType, serviceName, counterpartName string) {
	if s.notifSvc == nil {
		return
	}
	go func() {
		_ = s.notifSvc.NotifyBookingEvent(context.Background(), recipientID, notifType, serviceName, counterpartName)
	}()
}

func (s *service) SubmitReview(ctx context.Context, bookingID, userID uuid.UUID, input domain.SubmitReviewInput) (*domain.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

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
	if booking.Status != domain.BookingCompleted {
		return nil, ErrNotCompleted
	}

	exists, err := s.reviewRepo.ExistsForBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &domain.Review{
		ID:        uuid.New(),
		BookingID: bookingID,
		ServiceID: booking.ServiceID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	if err := s.reviewRepo.CreateAndRecompute(ctx, review, booking.ProviderID); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	if s.redis != nil {
		_ = s.redis.Del(ctx, "catalog:service:"+booking.ServiceID.String()).Err()
	}

	return review, nil
}

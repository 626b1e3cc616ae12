package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"handypro/internal/config"
	"handypro/internal/domain"
	"handypro/internal/repository"
)

var ErrServiceNotFound = errors.New("service not found")

type Service interface {
	List(ctx context.Context, filter domain.ServiceFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Service], error)
	GetDetail(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateService(ctx context.Context, providerID uuid.UUID, svc *domain.Service) error
	SetAvailability(ctx context.Context, providerID uuid.UUID, available bool) error
}

type service struct {
	serviceRepo  repository.ServiceRepository
	providerRepo repository.ProviderRepository
	redis        *redis.Client
	cfg          *config.Config
}

func NewService(serviceRepo repository.ServiceRepository, providerRepo repository.ProviderRepository, redisClient *redis.Client, cfg *config.Config) Service {
	return &service{
		serviceRepo:  serviceRepo,
		providerRepo: providerRepo,
		redis:        redisClient,
		cfg:          cfg,
	}
}

func (s *service) List(ctx context.Context, filter domain.ServiceFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Service], error) {
	params.Validate()

	services, total, err := s.serviceRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Service]{}, err
	}
	return domain.NewPaginatedResponse(services, params.Page, params.PageSize, total), nil
}

// GetDetail serves the service page. Detail rows are read-heavy and
// change rarely, so they sit in Redis for a short TTL; review submission
// invalidates the key.
func (s *service) GetDetail(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error) {
	cacheKey := "catalog:service:" + id.String()

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var detail domain.ServiceDetail
			if err := json.Unmarshal([]byte(cached), &detail); err == nil {
				return &detail, nil
			}
		}
	}

	detail, err := s.serviceRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrServiceNotFound
	}

	if s.redis != nil {
		if data, err := json.Marshal(detail); err == nil {
			_ = s.redis.Set(ctx, cacheKey, data, s.cfg.CatalogCacheTTL).Err()
		}
	}

	return detail, nil
}

func (s *service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.serviceRepo.ListCategories(ctx)
}

func (s *service) CreateService(ctx context.Context, providerID uuid.UUID, svc *domain.Service) error {
	svc.ID = uuid.New()
	svc.ProviderID = providerID
	svc.IsActive = true
	return s.serviceRepo.Create(ctx, svc)
}

func (s *service) SetAvailability(ctx context.Context, providerID uuid.UUID, available bool) error {
	return s.providerRepo.SetAvailability(ctx, providerID, available)
}

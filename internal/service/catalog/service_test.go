package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"handypro/internal/config"
	"handypro/internal/domain"
	"handypro/internal/mocks"
	"handypro/internal/service/catalog"
)

type catalogFixture struct {
	serviceRepo  *mocks.ServiceRepository
	providerRepo *mocks.ProviderRepository
	svc          catalog.Service
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		serviceRepo:  new(mocks.ServiceRepository),
		providerRepo: new(mocks.ProviderRepository),
	}
	f.svc = catalog.NewService(f.serviceRepo, f.providerRepo, nil, &config.Config{})
	return f
}

func TestCatalogService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("paginates and clamps parameters", func(t *testing.T) {
		f := newCatalogFixture()

		f.serviceRepo.On("List", ctx, domain.ServiceFilter{}, mock.MatchedBy(func(p domain.PaginationParams) bool {
			return p.Page == 1 && p.PageSize == 20
		})).Return([]domain.Service{{ID: uuid.New()}}, int64(41), nil).Once()

		result, err := f.svc.List(ctx, domain.ServiceFilter{}, domain.PaginationParams{Page: 0, PageSize: 0})

		assert.NoError(t, err)
		assert.Len(t, result.Data, 1)
		assert.Equal(t, int64(41), result.TotalItems)
		assert.Equal(t, 3, result.TotalPages)
		assert.True(t, result.HasNext)
	})
}

func TestCatalogService_GetDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown service", func(t *testing.T) {
		f := newCatalogFixture()
		id := uuid.New()

		f.serviceRepo.On("GetDetail", ctx, id).Return(nil, nil).Once()

		_, err := f.svc.GetDetail(ctx, id)

		assert.ErrorIs(t, err, catalog.ErrServiceNotFound)
	})

	t.Run("returns the joined detail", func(t *testing.T) {
		f := newCatalogFixture()
		id := uuid.New()

		f.serviceRepo.On("GetDetail", ctx, id).Return(&domain.ServiceDetail{
			Service:  domain.Service{ID: id, Rating: 4.5},
			Provider: domain.ProviderSummary{Username: "bob"},
		}, nil).Once()

		detail, err := f.svc.GetDetail(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, 4.5, detail.Rating)
		assert.Equal(t, "bob", detail.Provider.Username)
	})
}

func TestCatalogService_CreateService(t *testing.T) {
	ctx := context.Background()
	providerID := uuid.New()

	f := newCatalogFixture()

	f.serviceRepo.On("Create", ctx, mock.MatchedBy(func(s *domain.Service) bool {
		return s.ID != uuid.Nil && s.ProviderID == providerID && s.IsActive
	})).Return(nil).Once()

	svc := &domain.Service{Name: "Painting", Price: 60, CategoryID: uuid.New()}
	err := f.svc.CreateService(ctx, providerID, svc)

	assert.NoError(t, err)
	assert.Equal(t, providerID, svc.ProviderID)
	f.serviceRepo.AssertExpectations(t)
}

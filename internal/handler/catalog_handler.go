package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"handypro/internal/domain"
	"handypro/internal/middleware"
	"handypro/internal/service/catalog"
)

type CatalogHandler struct {
	catalogService catalog.Service
}

func NewCatalogHandler(catalogService catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	var filter domain.ServiceFilter
	if categoryStr := c.Query("category_id"); categoryStr != "" {
		categoryID, err := uuid.Parse(categoryStr)
		if err != nil {
			return middleware.BadRequest("Invalid category_id")
		}
		filter.CategoryID = &categoryID
	}
	if city := c.Query("city"); city != "" {
		filter.City = &city
	}

	result, err := h.catalogService.List(c.Context(), filter, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CatalogHandler) GetService(c *fiber.Ctx) error {
	serviceID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.catalogService.GetDetail(c.Context(), serviceID)
	if err != nil {
		if err == catalog.ErrServiceNotFound {
			return middleware.NotFound("Service not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.ListCategories(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"categories": categories,
	})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mazad/internal/errors"
	"mazad/internal/model"
	"mazad/internal/service"
)

// CatalogHandler handles category and location reference data.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateCategoryRequest represents a new bilingual category.
type CreateCategoryRequest struct {
	Name     LocalizedTextRequest `json:"name" validate:"required"`
	Slug     LocalizedTextRequest `json:"slug" validate:"required"`
	ParentID *uint                `json:"parent_id,omitempty"`
}

// CreateLocationRequest represents a new location.
type CreateLocationRequest struct {
	City      string `json:"city" validate:"required"`
	Country   string `json:"country" validate:"required"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// CreateCategory godoc
// @Summary Create a category (admin)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "Category data"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.catalogService.CreateCategory(
		c.Request().Context(),
		model.LocalizedText{En: req.Name.En, Ar: req.Name.Ar},
		model.LocalizedText{En: req.Slug.En, Ar: req.Slug.Ar},
		req.ParentID,
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

// GetCategory godoc
// @Summary Get one category
// @Tags catalog
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories/{id} [get]
func (h *CatalogHandler) GetCategory(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid category ID",
			Code:  "INVALID_ID",
		})
	}

	category, err := h.catalogService.GetCategory(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// ListCategories godoc
// @Summary List all categories
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Category
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogService.ListCategories(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateLocation godoc
// @Summary Create a location (admin)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLocationRequest true "Location data"
// @Success 201 {object} model.Location
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/locations [post]
func (h *CatalogHandler) CreateLocation(c echo.Context) error {
	var req CreateLocationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	location, err := h.catalogService.CreateLocation(c.Request().Context(), req.City, req.Country, req.Latitude, req.Longitude)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, location)
}

// ListLocations godoc
// @Summary List all locations
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Location
// @Failure 500 {object} errors.ErrorResponse
// @Router /locations [get]
func (h *CatalogHandler) ListLocations(c echo.Context) error {
	locations, err := h.catalogService.ListLocations(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, locations)
}

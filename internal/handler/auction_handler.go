package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"mazad/internal/errors"
	"mazad/internal/model"
	"mazad/internal/repository"
	"mazad/internal/service"
)

// AuctionHandler handles auction endpoints.
type AuctionHandler struct {
	auctionService service.AuctionService
	imageService   service.ImageService
}

// NewAuctionHandler creates a new auction handler.
func NewAuctionHandler(auctionService service.AuctionService, imageService service.ImageService) *AuctionHandler {
	return &AuctionHandler{
		auctionService: auctionService,
		imageService:   imageService,
	}
}

// LocalizedTextRequest is a bilingual text pair in a request body.
type LocalizedTextRequest struct {
	En string `json:"en" validate:"required"`
	Ar string `json:"ar" validate:"required"`
}

// OptionalLocalizedTextRequest is a bilingual pair where both sides may be
// omitted together.
type OptionalLocalizedTextRequest struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

// CreateAuctionRequest represents a new listing submission. Prices are in
// cents.
type CreateAuctionRequest struct {
	Title         LocalizedTextRequest         `json:"title" validate:"required"`
	Description   LocalizedTextRequest         `json:"description" validate:"required"`
	ItemCondition OptionalLocalizedTextRequest `json:"item_condition"`
	CategoryID    uint                         `json:"category_id" validate:"required"`
	LocationID    uint                         `json:"location_id" validate:"required"`
	StartTime     time.Time                    `json:"start_time" validate:"required"`
	EndTime       time.Time                    `json:"end_time" validate:"required"`
	StartingPrice int64                        `json:"starting_price" validate:"required,gt=0"`
	ReservePrice  *int64                       `json:"reserve_price,omitempty"`
	BidIncrement  int64                        `json:"bid_increment"`
}

// CreateAuctionResponse carries the new listing's id and forced status.
type CreateAuctionResponse struct {
	AuctionID uint                `json:"auction_id"`
	Status    model.AuctionStatus `json:"status"`
}

// UpdateStatusRequest represents an admin lifecycle transition.
type UpdateStatusRequest struct {
	AuctionID uint   `json:"auction_id" validate:"required"`
	Status    string `json:"status" validate:"required"`
}

// UploadImageRequest represents a base64 image upload for a listing.
type UploadImageRequest struct {
	AuctionID    uint                         `json:"auction_id" validate:"required"`
	ImageData    string                       `json:"image_data" validate:"required"`
	FileName     string                       `json:"file_name" validate:"required"`
	ContentType  string                       `json:"content_type"`
	AltText      OptionalLocalizedTextRequest `json:"alt_text"`
	DisplayOrder int                          `json:"display_order"`
}

// Create godoc
// @Summary Create an auction listing
// @Description The listing always enters review: status is forced to pending_approval and current price to the starting price.
// @Tags auctions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAuctionRequest true "Listing data"
// @Success 201 {object} CreateAuctionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions [post]
func (h *AuctionHandler) Create(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	var req CreateAuctionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	auction, err := h.auctionService.Create(c.Request().Context(), service.CreateAuctionInput{
		SellerID:      claims.UserID,
		Title:         model.LocalizedText{En: req.Title.En, Ar: req.Title.Ar},
		Description:   model.LocalizedText{En: req.Description.En, Ar: req.Description.Ar},
		ItemCondition: model.LocalizedText{En: req.ItemCondition.En, Ar: req.ItemCondition.Ar},
		CategoryID:    req.CategoryID,
		LocationID:    req.LocationID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		StartingPrice: req.StartingPrice,
		ReservePrice:  req.ReservePrice,
		BidIncrement:  req.BidIncrement,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, CreateAuctionResponse{
		AuctionID: auction.ID,
		Status:    auction.Status,
	})
}

// GetByID godoc
// @Summary Get one auction with its images and bids
// @Description Every fetch increments the auction's view counter.
// @Tags auctions
// @Produce json
// @Param id path int true "Auction ID"
// @Success 200 {object} service.AuctionDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/{id} [get]
func (h *AuctionHandler) GetByID(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid auction ID",
			Code:  "INVALID_ID",
		})
	}

	detail, err := h.auctionService.GetDetail(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Search godoc
// @Summary Search auctions with optional filters
// @Tags auctions
// @Produce json
// @Param category_id query int false "Category filter"
// @Param location_id query int false "Location filter"
// @Param status query string false "Status filter"
// @Param min_price query int false "Minimum current price in cents"
// @Param max_price query int false "Maximum current price in cents"
// @Success 200 {array} model.Auction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions [get]
func (h *AuctionHandler) Search(c echo.Context) error {
	filters, err := parseSearchFilters(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_FILTER",
		})
	}

	auctions, err := h.auctionService.Search(c.Request().Context(), filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, auctions)
}

// GetActive godoc
// @Summary List auctions open for bidding right now
// @Tags auctions
// @Produce json
// @Success 200 {array} model.Auction
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/active [get]
func (h *AuctionHandler) GetActive(c echo.Context) error {
	auctions, err := h.auctionService.GetActive(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, auctions)
}

// GetMy godoc
// @Summary List the caller's own auctions
// @Tags auctions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Auction
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/my [get]
func (h *AuctionHandler) GetMy(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	auctions, err := h.auctionService.GetBySeller(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, auctions)
}

// GetByStatus godoc
// @Summary List auctions in a given status (admin)
// @Tags auctions
// @Produce json
// @Security BearerAuth
// @Param status path string true "Auction status"
// @Success 200 {array} model.Auction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/auctions/{status} [get]
func (h *AuctionHandler) GetByStatus(c echo.Context) error {
	status := model.AuctionStatus(c.Param("status"))

	auctions, err := h.auctionService.GetByStatus(c.Request().Context(), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, auctions)
}

// UpdateStatus godoc
// @Summary Apply a lifecycle transition to an auction (admin)
// @Tags auctions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateStatusRequest true "Transition"
// @Success 200 {object} model.Auction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/auctions/status [put]
func (h *AuctionHandler) UpdateStatus(c echo.Context) error {
	var req UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	auction, err := h.auctionService.UpdateStatus(c.Request().Context(), req.AuctionID, model.AuctionStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, auction)
}

// UploadImage godoc
// @Summary Upload a listing image (seller or admin)
// @Tags auctions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UploadImageRequest true "Image data (base64)"
// @Success 201 {object} model.AuctionImage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/images [post]
func (h *AuctionHandler) UploadImage(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	var req UploadImageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	image, err := h.imageService.Upload(c.Request().Context(), service.UploadImageInput{
		AuctionID:    req.AuctionID,
		CallerID:     claims.UserID,
		CallerAdmin:  claims.Role == string(model.RoleAdmin),
		ImageData:    req.ImageData,
		FileName:     req.FileName,
		ContentType:  req.ContentType,
		AltText:      model.LocalizedText{En: req.AltText.En, Ar: req.AltText.Ar},
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, image)
}

// DeleteImage godoc
// @Summary Delete a listing image (seller or admin)
// @Tags auctions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/images/{id} [delete]
func (h *AuctionHandler) DeleteImage(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid image ID",
			Code:  "INVALID_ID",
		})
	}

	if err := h.imageService.Delete(c.Request().Context(), id, claims.UserID, claims.Role == string(model.RoleAdmin)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "image deleted"})
}

func parseSearchFilters(c echo.Context) (repository.SearchFilters, error) {
	var filters repository.SearchFilters

	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filters, err
		}
		categoryID := uint(id)
		filters.CategoryID = &categoryID
	}
	if v := c.QueryParam("location_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filters, err
		}
		locationID := uint(id)
		filters.LocationID = &locationID
	}
	if v := c.QueryParam("status"); v != "" {
		status := model.AuctionStatus(v)
		filters.Status = &status
	}
	if v := c.QueryParam("min_price"); v != "" {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filters, err
		}
		filters.MinPrice = &price
	}
	if v := c.QueryParam("max_price"); v != "" {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filters, err
		}
		filters.MaxPrice = &price
	}

	return filters, nil
}

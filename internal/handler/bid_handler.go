package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"mazad/internal/errors"
	"mazad/internal/service"
)

// BidHandler handles bid endpoints.
type BidHandler struct {
	bidService service.BidService
}

// NewBidHandler creates a new bid handler.
func NewBidHandler(bidService service.BidService) *BidHandler {
	return &BidHandler{bidService: bidService}
}

// PlaceBidRequest represents a bid placement request. Amount is in cents.
type PlaceBidRequest struct {
	AuctionID uint  `json:"auction_id" validate:"required"`
	BidAmount int64 `json:"bid_amount" validate:"required,gt=0"`
}

// PlaceBidResponse represents a successful bid placement.
type PlaceBidResponse struct {
	BidID        uint  `json:"bid_id"`
	AuctionID    uint  `json:"auction_id"`
	BidAmount    int64 `json:"bid_amount"`
	CurrentPrice int64 `json:"current_price"`
}

// Place godoc
// @Summary Place a bid on an active auction
// @Tags bids
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PlaceBidRequest true "Bid data"
// @Success 200 {object} PlaceBidResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /bids [post]
func (h *BidHandler) Place(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	var req PlaceBidRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	bid, err := h.bidService.PlaceBid(c.Request().Context(), req.AuctionID, claims.UserID, req.BidAmount)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, PlaceBidResponse{
		BidID:        bid.ID,
		AuctionID:    bid.AuctionID,
		BidAmount:    bid.BidAmount,
		CurrentPrice: bid.BidAmount,
	})
}

// GetMy godoc
// @Summary List the caller's bids, newest first
// @Tags bids
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Bid
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /bids/my [get]
func (h *BidHandler) GetMy(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	bids, err := h.bidService.GetMyBids(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, bids)
}

// GetByAuction godoc
// @Summary List an auction's bids, newest first
// @Tags bids
// @Produce json
// @Param id path int true "Auction ID"
// @Success 200 {array} model.Bid
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/{id}/bids [get]
func (h *BidHandler) GetByAuction(c echo.Context) error {
	auctionID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid auction ID",
			Code:  "INVALID_ID",
		})
	}

	bids, err := h.bidService.GetBidsByAuction(c.Request().Context(), auctionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, bids)
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

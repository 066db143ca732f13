package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mazad/internal/errors"
	"mazad/internal/service"
)

// WatchlistHandler handles watchlist endpoints.
type WatchlistHandler struct {
	watchlistService service.WatchlistService
}

// NewWatchlistHandler creates a new watchlist handler.
func NewWatchlistHandler(watchlistService service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService}
}

// WatchRequest identifies the auction to watch or unwatch.
type WatchRequest struct {
	AuctionID uint `json:"auction_id" validate:"required"`
}

// WatchStatusResponse reports whether the caller watches an auction.
type WatchStatusResponse struct {
	AuctionID uint `json:"auction_id"`
	Watching  bool `json:"watching"`
}

// Add godoc
// @Summary Add an auction to the caller's watchlist
// @Description Adding an auction already on the list is a no-op.
// @Tags watchlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body WatchRequest true "Auction to watch"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /watchlist [post]
func (h *WatchlistHandler) Add(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	var req WatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.watchlistService.Add(c.Request().Context(), claims.UserID, req.AuctionID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "auction added to watchlist"})
}

// Remove godoc
// @Summary Remove an auction from the caller's watchlist
// @Description Removing an auction that is not on the list is a no-op.
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param id path int true "Auction ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /watchlist/{id} [delete]
func (h *WatchlistHandler) Remove(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	auctionID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid auction ID",
			Code:  "INVALID_ID",
		})
	}

	if err := h.watchlistService.Remove(c.Request().Context(), claims.UserID, auctionID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "auction removed from watchlist"})
}

// GetMy godoc
// @Summary List the caller's watched auctions
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.WatchlistItem
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) GetMy(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	items, err := h.watchlistService.GetMy(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// IsWatching godoc
// @Summary Check whether the caller watches an auction
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param id path int true "Auction ID"
// @Success 200 {object} WatchStatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /watchlist/{id} [get]
func (h *WatchlistHandler) IsWatching(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	auctionID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid auction ID",
			Code:  "INVALID_ID",
		})
	}

	watching, err := h.watchlistService.IsWatching(c.Request().Context(), claims.UserID, auctionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, WatchStatusResponse{AuctionID: auctionID, Watching: watching})
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuctionNotFound is returned when the referenced auction does not exist.
	ErrAuctionNotFound = errors.New("auction not found")
	// ErrCategoryNotFound is returned when the referenced category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrLocationNotFound is returned when the referenced location does not exist.
	ErrLocationNotFound = errors.New("location not found")
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotificationNotFound is returned when the referenced notification does not exist.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrImageNotFound is returned when the referenced auction image does not exist.
	ErrImageNotFound = errors.New("image not found")
	// ErrForbidden is returned when the caller lacks authority over the resource.
	ErrForbidden = errors.New("access denied")
	// ErrAuctionNotActive is returned when an operation requires an active auction.
	ErrAuctionNotActive = errors.New("auction is not active")
	// ErrAuctionEnded is returned when the auction's time window has closed.
	ErrAuctionEnded = errors.New("auction has ended")
	// ErrBidTooLow is the match target for BidTooLowError.
	ErrBidTooLow = errors.New("bid amount too low")
	// ErrInvalidTransition is returned for a status change the lifecycle forbids.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrValidation is the match target for ValidationError.
	ErrValidation = errors.New("validation failed")
)

// BidTooLowError rejects a bid below the minimum and carries the computed
// minimum so the caller can retry with a valid amount.
type BidTooLowError struct {
	Minimum int64 // cents
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid must be at least %d cents", e.Minimum)
}

// Is lets errors.Is(err, ErrBidTooLow) match.
func (e *BidTooLowError) Is(target error) bool {
	return target == ErrBidTooLow
}

// ValidationError rejects malformed input with a field-level reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Minimum int64  `json:"minimum_bid,omitempty"` // set on BID_TOO_LOW
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Minimum    int64
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Minimum: e.Minimum,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors with stable codes.
// Anything unrecognized is treated as an infrastructure failure and
// surfaced generically; callers log the original error.
func MapErrorToHTTP(err error) *HTTPError {
	var tooLow *BidTooLowError
	if errors.As(err, &tooLow) {
		httpErr := NewHTTPError(http.StatusBadRequest, tooLow.Error(), "BID_TOO_LOW")
		httpErr.Minimum = tooLow.Minimum
		return httpErr
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return NewHTTPError(http.StatusBadRequest, validation.Error(), "VALIDATION_ERROR")
	}

	switch {
	case errors.Is(err, ErrAuctionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "AUCTION_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrLocationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "LOCATION_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrNotificationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOTIFICATION_NOT_FOUND")
	case errors.Is(err, ErrImageNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "IMAGE_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrAuctionNotActive):
		return NewHTTPError(http.StatusConflict, err.Error(), "AUCTION_NOT_ACTIVE")
	case errors.Is(err, ErrAuctionEnded):
		return NewHTTPError(http.StatusConflict, err.Error(), "AUCTION_ENDED")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

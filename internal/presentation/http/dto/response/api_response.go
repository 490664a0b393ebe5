package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tokoberkah/kasir-api/internal/domain/entity"
	"github.com/tokoberkah/kasir-api/pkg/apperror"
	"github.com/tokoberkah/kasir-api/pkg/pagination"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta contains metadata about the response
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

// newMeta creates metadata for the response
func newMeta(c *gin.Context) *Meta {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return &Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

// Success sends a success response
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    newMeta(c),
	})
}

// SuccessWithPagination sends a success response with pagination
func SuccessWithPagination[T any](c *gin.Context, statusCode int, message string, result *pagination.PaginatedResult[T]) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    result,
		Meta:    newMeta(c),
	})
}

// mapDomainError translates domain sentinel errors into HTTP-aware AppErrors.
func mapDomainError(err error) *apperror.AppError {
	if overpay, ok := entity.IsOverpayment(err); ok {
		return &apperror.AppError{
			Code:    http.StatusUnprocessableEntity,
			Message: overpay.Error(),
			Details: gin.H{"remaining_amount": overpay.Remaining},
		}
	}

	switch {
	case errors.Is(err, entity.ErrEmptyCart),
		errors.Is(err, entity.ErrMissingCustomerForCredit),
		errors.Is(err, entity.ErrInvalidQuantity),
		errors.Is(err, entity.ErrNonPositiveAmount):
		return apperror.NewBadRequestError(err.Error())
	case errors.Is(err, entity.ErrSaleNotFound):
		return apperror.NewNotFoundError("Sale")
	case errors.Is(err, entity.ErrPaymentConflict):
		return &apperror.AppError{Code: http.StatusConflict, Message: err.Error()}
	}
	return apperror.GetAppError(err)
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	appErr := mapDomainError(err)
	c.JSON(appErr.Code, APIResponse{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Details,
		Meta:    newMeta(c),
	})
}

// ErrorWithCode sends an error response with a specific status code
func ErrorWithCode(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: message,
		Meta:    newMeta(c),
	})
}

// Created sends a 201 Created response
func Created(c *gin.Context, message string, data interface{}) {
	Success(c, 201, message, data)
}

// OK sends a 200 OK response
func OK(c *gin.Context, message string, data interface{}) {
	Success(c, 200, message, data)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, 400, message)
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	ErrorWithCode(c, 404, message)
}

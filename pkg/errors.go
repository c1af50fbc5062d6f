package pkg

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var ExposeErrorDetails = false

func init() {
	if gin.DebugMode == gin.Mode() || gin.TestMode == gin.Mode() {
		ExposeErrorDetails = true
	}
}

// Reusable sentinel errors
var (
	ErrNotImplemented      = errors.New("capability not implemented")
	ErrCarrierNotSupported = errors.New("carrier not supported")
	ErrRateLimitExceeded   = errors.New("rate limit exceeded")
)

// ErrorCode defines a standardized error code
type ErrorCode struct {
	Code    string
	Status  int
	Message string // default message
}

var (
	// Generic app
	ErrInvalidInputCode   = ErrorCode{Code: "APP_INVALID_INPUT", Status: http.StatusBadRequest, Message: "invalid input"}
	ErrServerCode         = ErrorCode{Code: "APP_INTERNAL", Status: http.StatusInternalServerError, Message: "internal server error"}
	ErrRecordNotFoundCode = ErrorCode{Code: "APP_NOT_FOUND", Status: http.StatusNotFound, Message: "record not found"}

	// Rate shopping / carrier domain
	ErrCarrierNotAvailableCode = ErrorCode{Code: "CARRIER_NOT_AVAILABLE", Status: http.StatusUnprocessableEntity, Message: "carrier not available"}
	ErrZoneNotServiceableCode  = ErrorCode{Code: "CARRIER_ZONE_NOT_SERVICEABLE", Status: http.StatusUnprocessableEntity, Message: "zone not serviceable"}
	ErrNoCarriersCode          = ErrorCode{Code: "CARRIER_NONE_AVAILABLE", Status: http.StatusUnprocessableEntity, Message: "no carriers available"}
	ErrCarrierNotSupportedCode = ErrorCode{Code: "CARRIER_NOT_SUPPORTED", Status: http.StatusBadRequest, Message: "carrier not supported"}
	ErrInsufficientDataCode    = ErrorCode{Code: "FORECAST_INSUFFICIENT_DATA", Status: http.StatusUnprocessableEntity, Message: "insufficient data for forecasting"}
)

type AppError struct {
	Code    ErrorCode
	Message string // public-facing message
	Cause   error  // internal cause (wrapped)
}

func (e AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}
func (e AppError) Unwrap() error { return e.Cause }

func NewAppError(code ErrorCode, msg string, cause error) error {
	return AppError{Code: code, Message: msg, Cause: cause}
}

// ErrorResponse defines the standardized error response format
type ErrorResponse struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ToErrorResponse converts an error into an ErrorResponse, logging details and optionally exposing error messages.
// If the error is not an AppError, it is converted to a generic 500 error.
func ToErrorResponse(logger *zap.Logger, traceID string, err error) ErrorResponse {
	var appErr AppError
	if errors.As(err, &appErr) {
		resp := ErrorResponse{
			Status:  appErr.Code.Status,
			Code:    appErr.Code.Code,
			Message: appErr.Message,
		}
		logger.Error("application error", zap.String(TraceId, traceID), zap.Error(err))
		if ExposeErrorDetails {
			resp.Details = err.Error()
		}
		return resp
	}
	// Unknown error : 500
	resp := ErrorResponse{
		Status:  ErrServerCode.Status,
		Code:    ErrServerCode.Code,
		Message: ErrServerCode.Message,
	}
	logger.Error("application error", zap.String(TraceId, traceID), zap.Error(err))
	if ExposeErrorDetails {
		resp.Details = err.Error()
	}
	return resp
}

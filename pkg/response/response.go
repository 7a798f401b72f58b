package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// TotalCountHeader carries the unpaginated size of a list response
const TotalCountHeader = "X-Total-Count"

// Error codes that are not domain kinds
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Error builds an error body
func Error(code, message string) *ErrorResponse {
	return &ErrorResponse{Status: message, Code: code}
}

// ErrorWithDetails builds an error body carrying extra details
func ErrorWithDetails(code, message, details string) *ErrorResponse {
	return &ErrorResponse{Status: message, Code: code, Details: details}
}

func BadRequest(message string) *ErrorResponse {
	return Error(ErrCodeBadRequest, message)
}

func Unauthorized(message string) *ErrorResponse {
	return Error(ErrCodeUnauthorized, message)
}

func InternalError(message string) *ErrorResponse {
	return Error(ErrCodeInternal, message)
}

// List writes a JSON array and the total count header
func List(c *gin.Context, items interface{}, total int) {
	c.Header(TotalCountHeader, strconv.Itoa(total))
	c.JSON(http.StatusOK, items)
}

// NoContent writes an empty 204 response
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

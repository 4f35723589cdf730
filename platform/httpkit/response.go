// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"

	"places_gateway_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the tagged success/error response wrapper. Data is present
// exactly when OK is true, Error exactly when it is false.
type Envelope struct {
	OK    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

// OK sends a 200 success envelope with the given payload.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, Envelope{OK: true, Data: payload})
}

// Fail sends an error envelope with the given status, code and message.
func Fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, Envelope{OK: false, Error: &ErrorBody{Code: code, Message: message}})
}

// HandleError maps domain errors to HTTP responses.
// If the error is a typed *apperr.Error, its Kind determines the HTTP status
// and wire code. Otherwise it defaults to 400 BAD_REQUEST.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if domainErr, ok := err.(*apperr.Error); ok {
		Fail(c, domainErr.HTTPStatus(), domainErr.Code(), domainErr.Message)
		return true
	}

	// Fallback for non-typed errors
	Fail(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())
	return true
}

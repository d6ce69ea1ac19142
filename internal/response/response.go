// Package response renders the API's uniform envelope:
// {success, message, data} on success and {success, message, errors} on
// failure.
package response

import "github.com/gin-gonic/gin"

// Envelope is the shape of every API response.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// Success writes a success envelope with the given status code.
func Success(c *gin.Context, code int, message string, data any) {
	c.JSON(code, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error writes a failure envelope. With no explicit error strings the
// message is repeated in the errors list, matching the API contract.
func Error(c *gin.Context, code int, message string, errs ...string) {
	if len(errs) == 0 {
		errs = []string{message}
	}
	c.JSON(code, Envelope{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

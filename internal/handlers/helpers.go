package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todo-list-api/internal/middleware"
	"todo-list-api/internal/response"
	"todo-list-api/internal/service"
)

func currentUserID(c *gin.Context) uint {
	return c.GetUint(middleware.ContextUserID)
}

// pathID parses a numeric path parameter; on failure it writes a 400 and
// reports false.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service errors onto the envelope. Validation and
// not-found errors carry their own message; anything else is a storage or
// internal failure and gets the operation's generic message, leaking nothing.
func respondServiceError(c *gin.Context, err error, fallback string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		response.Error(c, http.StatusBadRequest, verr.Message)
		return
	}
	var nferr *service.NotFoundError
	if errors.As(err, &nferr) {
		response.Error(c, http.StatusNotFound, nferr.Message)
		return
	}
	response.Error(c, http.StatusInternalServerError, fallback)
}

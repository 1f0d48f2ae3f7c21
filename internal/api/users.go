package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler serves actor identity lookups.
type UserHandler struct {
	repo UserRepository
	log  *logrus.Logger
}

// NewUserHandler creates a UserHandler with the given repository and logger.
func NewUserHandler(repo UserRepository, log *logrus.Logger) *UserHandler {
	return &UserHandler{repo: repo, log: log}
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.repo.ListUsers(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("listing users")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, users)
}

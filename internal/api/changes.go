package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kitworks/kittrack/internal/models"
)

// ChangeFeedHandler serves the flat cross-kit audit feed.
type ChangeFeedHandler struct {
	repo ChangeFeedRepository
	log  *logrus.Logger
}

// NewChangeFeedHandler creates a ChangeFeedHandler with the given repository and logger.
func NewChangeFeedHandler(repo ChangeFeedRepository, log *logrus.Logger) *ChangeFeedHandler {
	return &ChangeFeedHandler{repo: repo, log: log}
}

// Query handles GET /api/v1/changes?start=YYYY-MM-DD&end=YYYY-MM-DD.
// Both bounds are required and inclusive at day granularity: the window
// runs from 00:00:00 of start to 23:59:59 of end.
func (h *ChangeFeedHandler) Query(c *gin.Context) {
	startParam := c.Query("start")
	endParam := c.Query("end")

	if startParam == "" || endParam == "" {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, "start and end dates are required")

		return
	}

	start, err := parseDay(startParam)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, "start: "+err.Error())

		return
	}

	end, err := parseDay(endParam)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, "end: "+err.Error())

		return
	}

	items, err := h.repo.QueryRange(c.Request.Context(), startOfDay(start), endOfDay(end))
	if err != nil {
		if errors.Is(err, models.ErrInvalidDateRange) {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, "end date is before start date")

			return
		}

		h.log.WithError(err).Error("querying change feed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action": "changes.query",
		"start":  startParam,
		"end":    endParam,
		"count":  len(items),
	}).Info("audit")

	c.JSON(http.StatusOK, items)
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kitworks/kittrack/internal/models"
)

// HistoryHandler serves change history endpoints.
type HistoryHandler struct {
	repo HistoryRepository
	log  *logrus.Logger
}

// NewHistoryHandler creates a HistoryHandler with the given repository and logger.
func NewHistoryHandler(repo HistoryRepository, log *logrus.Logger) *HistoryHandler {
	return &HistoryHandler{repo: repo, log: log}
}

// GetHistory handles GET /api/v1/kits/:id/history.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	kitID, err := parseKitID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var before *time.Time

	if beforeParam := c.Query("before"); beforeParam != "" {
		t, terr := parseTimestamp(beforeParam)
		if terr != nil {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, terr.Error())

			return
		}

		before = &t
	}

	entries, err := h.repo.GetHistory(c.Request.Context(), kitID, before)
	if err != nil {
		if errors.Is(err, models.ErrKitNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "kit not found")

			return
		}

		h.log.WithError(err).Error("getting change history")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action": "history.get",
		"kit_id": kitID,
		"count":  len(entries),
	}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// LatestVersion handles GET /api/v1/kits/:id/version.
func (h *HistoryHandler) LatestVersion(c *gin.Context) {
	kitID, err := parseKitID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	version, err := h.repo.LatestVersion(c.Request.Context(), kitID)
	if err != nil {
		if errors.Is(err, models.ErrKitNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "kit not found")

			return
		}

		h.log.WithError(err).Error("getting latest version")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"version": version})
}

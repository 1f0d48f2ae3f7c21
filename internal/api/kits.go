package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kitworks/kittrack/internal/models"
)

// KitHandler serves kit CRUD and point-in-time endpoints.
type KitHandler struct {
	repo     KitRepository
	temporal TemporalRepository
	log      *logrus.Logger
}

// NewKitHandler creates a KitHandler with the given services and logger.
func NewKitHandler(repo KitRepository, temporal TemporalRepository, log *logrus.Logger) *KitHandler {
	return &KitHandler{repo: repo, temporal: temporal, log: log}
}

// List handles GET /api/v1/kits. With ?date= it returns the whole kit set
// as it existed at that instant.
func (h *KitHandler) List(c *gin.Context) {
	if dateParam := c.Query("date"); dateParam != "" {
		t, err := parseTimestamp(dateParam)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

			return
		}

		kits, err := h.temporal.ListKitsAt(c.Request.Context(), t)
		if err != nil {
			h.log.WithError(err).Error("listing kits at date")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

			return
		}

		c.JSON(http.StatusOK, kits)

		return
	}

	kits, err := h.repo.ListKits(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("listing kits")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, kits)
}

// Get handles GET /api/v1/kits/:id. With ?date= it returns the kit as it
// existed at that instant; a kit created later yields 404.
func (h *KitHandler) Get(c *gin.Context) {
	kitID, err := parseKitID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if dateParam := c.Query("date"); dateParam != "" {
		t, terr := parseTimestamp(dateParam)
		if terr != nil {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, terr.Error())

			return
		}

		kit, terr := h.temporal.GetKitAt(c.Request.Context(), kitID, t)
		if terr != nil {
			if errors.Is(terr, models.ErrKitNotFound) {
				respondError(c, http.StatusNotFound, ErrCodeNotFound, "kit not found at the specified date")

				return
			}

			h.log.WithError(terr).Error("reconstructing kit")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

			return
		}

		c.JSON(http.StatusOK, kit)

		return
	}

	kit, err := h.repo.GetKit(c.Request.Context(), kitID)
	if err != nil {
		if errors.Is(err, models.ErrKitNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "kit not found")

			return
		}

		h.log.WithError(err).Error("getting kit")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, kit)
}

// Create handles POST /api/v1/kits.
func (h *KitHandler) Create(c *gin.Context) {
	var req models.CreateKitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON payload")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	kit, err := h.repo.CreateKit(c.Request.Context(), req)
	if err != nil {
		h.log.WithError(err).Error("creating kit")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusCreated, kit)
}

// Update handles PUT /api/v1/kits/:id — the versioned writer endpoint.
// A save with no detected diffs is not a fault: it returns 200 with a
// no_changes marker and the record untouched.
func (h *KitHandler) Update(c *gin.Context) {
	kitID, err := parseKitID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdateKitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON payload")

		return
	}

	if err := req.Validate(); err != nil {
		if errors.Is(err, models.ErrNoChanges) {
			c.JSON(http.StatusOK, gin.H{"no_changes": true})

			return
		}

		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	kit, err := h.repo.UpdateKit(c.Request.Context(), kitID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrKitNotFound):
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "kit not found")
		case errors.Is(err, models.ErrVersionConflict):
			respondError(c, http.StatusConflict, ErrCodeConflict, "kit was updated by someone else")
		case errors.Is(err, models.ErrNoChanges):
			c.JSON(http.StatusOK, gin.H{"no_changes": true})
		default:
			h.log.WithError(err).Error("updating kit")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, kit)
}

// Delete handles DELETE /api/v1/kits/:id.
func (h *KitHandler) Delete(c *gin.Context) {
	kitID, err := parseKitID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := h.repo.DeleteKit(c.Request.Context(), kitID); err != nil {
		if errors.Is(err, models.ErrKitNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "kit not found")

			return
		}

		h.log.WithError(err).Error("deleting kit")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

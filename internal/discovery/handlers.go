// internal/discovery/handlers.go

package discovery

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/sparkd-app/sparkd-backend/internal/auth"
	"github.com/sparkd-app/sparkd-backend/internal/common/utils"
	"github.com/sparkd-app/sparkd-backend/internal/profile"
)

// Handler serves discovery endpoints
type Handler struct {
	service Service
}

// NewHandler creates a discovery handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Discover handles GET /api/v1/discovery
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	RecordDiscoveryRequest()

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	spec := ParseFilterSpec(r.URL.Query())

	result, err := h.service.Discover(r.Context(), userID, spec)
	if err != nil {
		if errors.Is(err, ErrRequesterNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		log.Printf("discovery: request for user %d failed: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load discovery results")
		return
	}

	utils.RespondWithData(w, http.StatusOK, NewDiscoveryResponse(result, time.Now()))
}

// Compatibility handles GET /api/v1/discovery/compatibility/{userId}
func (h *Handler) Compatibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	otherID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || otherID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	other, score, err := h.service.Compatibility(r.Context(), userID, otherID)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequesterNotFound), errors.Is(err, profile.ErrProfileNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
		default:
			log.Printf("discovery: compatibility %d->%d failed: %v", userID, otherID, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute compatibility")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, NewCompatibilityResponse(other, score))
}

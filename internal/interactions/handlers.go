// internal/interactions/handlers.go

package interactions

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sparkd-app/sparkd-backend/internal/auth"
	"github.com/sparkd-app/sparkd-backend/internal/common/utils"
)

// Handler serves swipe, match and block endpoints
type Handler struct {
	service Service
}

// NewHandler creates an interactions handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Swipe handles POST /api/v1/interactions/swipes
func (h *Handler) Swipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Swipe(r.Context(), userID, req.TargetID, req.Direction)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfInteraction), errors.Is(err, ErrInvalidDirection):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("interactions: swipe %d->%d failed: %v", userID, req.TargetID, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record swipe")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, resp)
}

// GetMatches handles GET /api/v1/interactions/matches
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	matches, err := h.service.GetMatches(r.Context(), userID)
	if err != nil {
		log.Printf("interactions: loading matches for %d failed: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load matches")
		return
	}
	if matches == nil {
		matches = []MatchedUser{}
	}

	utils.RespondWithData(w, http.StatusOK, matches)
}

// Block handles POST /api/v1/interactions/users/{id}/block
func (h *Handler) Block(w http.ResponseWriter, r *http.Request) {
	h.updateBlock(w, r, true)
}

// Unblock handles DELETE /api/v1/interactions/users/{id}/block
func (h *Handler) Unblock(w http.ResponseWriter, r *http.Request) {
	h.updateBlock(w, r, false)
}

func (h *Handler) updateBlock(w http.ResponseWriter, r *http.Request, create bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	targetID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || targetID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if create {
		err = h.service.Block(r.Context(), userID, targetID)
	} else {
		err = h.service.Unblock(r.Context(), userID, targetID)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfInteraction):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrBlockNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Block not found")
		default:
			log.Printf("interactions: block update %d->%d failed: %v", userID, targetID, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update block")
		}
		return
	}

	if create {
		utils.MessageResponse(w, "User blocked", http.StatusOK)
	} else {
		utils.MessageResponse(w, "User unblocked", http.StatusOK)
	}
}

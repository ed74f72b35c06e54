package interactions

import (
	"github.com/gorilla/mux"

	"github.com/sparkd-app/sparkd-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/interactions").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/swipes", handler.Swipe).Methods("POST")
	api.HandleFunc("/matches", handler.GetMatches).Methods("GET")
	api.HandleFunc("/users/{id}/block", handler.Block).Methods("POST")
	api.HandleFunc("/users/{id}/block", handler.Unblock).Methods("DELETE")
}

package discovery

import (
	"github.com/gorilla/mux"

	"github.com/sparkd-app/sparkd-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/discovery").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.Discover).Methods("GET")
	api.HandleFunc("/compatibility/{userId}", handler.Compatibility).Methods("GET")
}

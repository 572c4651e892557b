package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling
	r.Use(RequestIDMiddleware)

	r.Get("/", apiHandler.RootHandler)
	r.Post("/chat", apiHandler.ChatHandler)
	r.Get("/rooms/{roomNumber}", apiHandler.RoomRecordHandler)

	return r
}

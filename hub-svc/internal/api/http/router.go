package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter mounts the REST routes and the websocket endpoint behind CORS.
func NewRouter(handler *Handler, ws http.Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	if ws != nil {
		r.Handle("/ws", ws).Methods("GET")
	}
	return cors.Default().Handler(r)
}

package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes registers the API endpoints; images serves stored files with the
// "/images/" prefix already stripped.
func (h *Handlers) Routes(images http.Handler) *mux.Router {
	router := mux.NewRouter()

	router.Handle("/graphql", h.GraphQLHandler())
	router.HandleFunc("/post-image", h.PostImageHandler).Methods(http.MethodPut)
	router.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	router.PathPrefix("/images/").Handler(http.StripPrefix("/images/", images)).Methods(http.MethodGet, http.MethodHead)

	return router
}

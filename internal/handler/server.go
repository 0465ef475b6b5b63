// Package handler implements the HTTP handlers for the Resrv API.
// All handlers are methods on Server. Methods are split into files by
// resource (health.go, restaurant.go, chat.go) but share the same struct
// so they can reach its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/resrv/backend/internal/domain"
)

// RestaurantServicer defines the catalog operations the handlers depend on.
// Defining it here, in the consumer package, lets handler tests inject a
// mock without a catalog.
type RestaurantServicer interface {
	Search(ctx context.Context, query string, p domain.PaginationParams) ([]domain.Restaurant, int, error)
	GetByID(ctx context.Context, id int64) (domain.Restaurant, error)
	Recommend(ctx context.Context, criteria *domain.Filters) (domain.Buckets, error)
}

// ChatServicer defines the preference-collection conversation operations.
type ChatServicer interface {
	Start(ctx context.Context) (domain.ChatReply, error)
	Message(ctx context.Context, sessionID, text string) (domain.ChatReply, error)
	History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
	Reset(ctx context.Context, sessionID string) error
}

// Server holds the dependencies shared by every handler.
type Server struct {
	restaurants RestaurantServicer
	chat        ChatServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(restaurants RestaurantServicer, chat ChatServicer) *Server {
	return &Server{restaurants: restaurants, chat: chat}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil)
}

// Routes returns the API router. searchLimit, when non-nil, wraps the
// search-as-you-type and recommendation routes, which clients call on
// every keystroke.
func (s *Server) Routes(searchLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Group(func(r chi.Router) {
		if searchLimit != nil {
			r.Use(searchLimit)
		}
		r.Get("/restaurants", s.ListRestaurants)
		r.Post("/recommendations", s.Recommend)
	})
	r.Get("/restaurants/{id}", s.GetRestaurant)

	r.Route("/chat/sessions", func(r chi.Router) {
		r.Post("/", s.StartChat)
		r.Delete("/{id}", s.ResetChat)
		r.Get("/{id}/messages", s.ListChatMessages)
		r.Post("/{id}/messages", s.SendChatMessage)
	})

	return r
}

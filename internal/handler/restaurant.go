package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/resrv/backend/internal/domain"
)

// Pagination is the page metadata returned with list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// RestaurantList is the body of GET /restaurants.
type RestaurantList struct {
	Data       []domain.Restaurant `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

// RecommendRequest is the body of POST /recommendations.
// A missing or null filters object means no filtering context yet.
type RecommendRequest struct {
	Filters *FiltersBody `json:"filters"`
}

// FiltersBody is the wire form of domain.Filters.
type FiltersBody struct {
	Area     string `json:"area" validate:"max=100"`
	Cuisine  string `json:"cuisine" validate:"max=100"`
	Occasion string `json:"occasion" validate:"max=100"`
	Budget   *int   `json:"budget" validate:"omitempty,gte=0"`
	People   *int   `json:"people" validate:"omitempty,gte=0"`
}

// RecommendResponse is the body returned by POST /recommendations.
type RecommendResponse struct {
	Matched []domain.Restaurant `json:"matched"`
	Others  []domain.Restaurant `json:"others"`
	Mode    domain.Mode         `json:"mode"`
}

// ListRestaurants handles GET /restaurants.
// ?q= filters by loose match on name, location, cuisine and area;
// ?page= and ?limit= paginate (defaults: page=1, limit=20, max=100).
func (s *Server) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	var (
		q           *string
		page, limit *int
	)
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "q", query, &q); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid q parameter")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &page); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid page parameter")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &limit); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid limit parameter")
		return
	}

	params := domain.NewPaginationParams(page, limit)
	restaurants, total, err := s.restaurants.Search(r.Context(), derefString(q), params)
	if err != nil {
		writeServiceError(r.Context(), w, err, "no restaurants match the search")
		return
	}

	writeJSON(w, http.StatusOK, RestaurantList{
		Data: orEmpty(restaurants),
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetRestaurant handles GET /restaurants/{id}.
func (s *Server) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid restaurant id")
		return
	}

	restaurant, err := s.restaurants.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, err, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

// Recommend handles POST /recommendations.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if !decodeBody(w, r, &req, true) {
		return
	}

	buckets, err := s.restaurants.Recommend(r.Context(), req.Filters.toDomain())
	if err != nil {
		writeServiceError(r.Context(), w, err, "no restaurants to recommend")
		return
	}

	writeJSON(w, http.StatusOK, RecommendResponse{
		Matched: orEmpty(buckets.Matched),
		Others:  orEmpty(buckets.Others),
		Mode:    buckets.Mode,
	})
}

// toDomain converts the wire filters; a nil body stays nil.
func (f *FiltersBody) toDomain() *domain.Filters {
	if f == nil {
		return nil
	}
	return &domain.Filters{
		Area:     f.Area,
		Cuisine:  f.Cuisine,
		Occasion: f.Occasion,
		Budget:   f.Budget,
		People:   f.People,
	}
}

func orEmpty(rs []domain.Restaurant) []domain.Restaurant {
	if rs == nil {
		return []domain.Restaurant{}
	}
	return rs
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package handler_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/resrv/backend/internal/domain"
	"github.com/pkordes/resrv/backend/internal/handler"
)

// mockRestaurantServicer is a test double for handler.RestaurantServicer.
// Set only the method fields your test needs.
type mockRestaurantServicer struct {
	search    func(ctx context.Context, query string, p domain.PaginationParams) ([]domain.Restaurant, int, error)
	getByID   func(ctx context.Context, id int64) (domain.Restaurant, error)
	recommend func(ctx context.Context, criteria *domain.Filters) (domain.Buckets, error)
}

func (m *mockRestaurantServicer) Search(ctx context.Context, query string, p domain.PaginationParams) ([]domain.Restaurant, int, error) {
	return m.search(ctx, query, p)
}
func (m *mockRestaurantServicer) GetByID(ctx context.Context, id int64) (domain.Restaurant, error) {
	return m.getByID(ctx, id)
}
func (m *mockRestaurantServicer) Recommend(ctx context.Context, criteria *domain.Filters) (domain.Buckets, error) {
	return m.recommend(ctx, criteria)
}

// compile-time check
var _ handler.RestaurantServicer = (*mockRestaurantServicer)(nil)

// ---- helpers ---------------------------------------------------------------

func newRestaurantHTTPHandler(svc handler.RestaurantServicer) http.Handler {
	return handler.NewServer(svc, nil).Routes(nil)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(h http.Handler, method, url string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func restaurantFixture() domain.Restaurant {
	price := 800
	return domain.Restaurant{ID: 1, Name: "老四川", Cuisines: []string{"火鍋"}, Areas: []string{"信義"}, Price: &price}
}

// ---- GET /restaurants ------------------------------------------------------

func TestListRestaurants_200(t *testing.T) {
	var captured domain.PaginationParams
	var capturedQuery string
	svc := &mockRestaurantServicer{
		search: func(_ context.Context, q string, p domain.PaginationParams) ([]domain.Restaurant, int, error) {
			capturedQuery, captured = q, p
			return []domain.Restaurant{restaurantFixture()}, 7, nil
		},
	}

	rec := do(newRestaurantHTTPHandler(svc), http.MethodGet, "/restaurants?q=%E4%BF%A1%E7%BE%A9&page=2&limit=5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "信義", capturedQuery)
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 5}, captured)

	var body handler.RestaurantList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "老四川", body.Data[0].Name)
	assert.Equal(t, handler.Pagination{Page: 2, Limit: 5, Total: 7}, body.Pagination)
}

func TestListRestaurants_EmptyDataIsArray(t *testing.T) {
	svc := &mockRestaurantServicer{
		search: func(context.Context, string, domain.PaginationParams) ([]domain.Restaurant, int, error) {
			return nil, 0, nil
		},
	}

	rec := do(newRestaurantHTTPHandler(svc), http.MethodGet, "/restaurants", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestListRestaurants_400_BadPage(t *testing.T) {
	rec := do(newRestaurantHTTPHandler(&mockRestaurantServicer{}), http.MethodGet, "/restaurants?page=abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListRestaurants_HugePageIsEmpty(t *testing.T) {
	rec := do(newWiredHandler(t), http.MethodGet, "/restaurants?page=230584300921369397&limit=20", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.RestaurantList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Empty(t, body.Data)
	assert.Equal(t, 2, body.Pagination.Total)
	assert.Equal(t, 230584300921369397, body.Pagination.Page)
}

func TestListRestaurants_404MessageDescribesSearch(t *testing.T) {
	svc := &mockRestaurantServicer{
		search: func(context.Context, string, domain.PaginationParams) ([]domain.Restaurant, int, error) {
			return nil, 0, domain.ErrNotFound
		},
	}

	rec := do(newRestaurantHTTPHandler(svc), http.MethodGet, "/restaurants?q=x", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no restaurants match the search", decodeError(t, rec).Message)
}

func TestListRestaurants_500(t *testing.T) {
	svc := &mockRestaurantServicer{
		search: func(context.Context, string, domain.PaginationParams) ([]domain.Restaurant, int, error) {
			return nil, 0, errors.New("db down")
		},
	}

	rec := do(newRestaurantHTTPHandler(svc), http.MethodGet, "/restaurants", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeError(t, rec).Code)
	assert.NotContains(t, rec.Body.String(), "db down", "internal details stay in the log")
}

func TestListRestaurants_RateLimited(t *testing.T) {
	svc := &mockRestaurantServicer{
		search: func(context.Context, string, domain.PaginationParams) ([]domain.Restaurant, int, error) {
			return nil, 0, nil
		},
	}
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	h := handler.NewServer(svc, nil).Routes(deny)

	assert.Equal(t, http.StatusTooManyRequests, do(h, http.MethodGet, "/restaurants", nil).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz", nil).Code, "health is not limited")
}

// ---- GET /restaurants/{id} -------------------------------------------------

func TestGetRestaurant_200(t *testing.T) {
	svc := &mockRestaurantServicer{
		getByID: func(_ context.Context, id int64) (domain.Restaurant, error) {
			assert.Equal(t, int64(1), id)
			return restaurantFixture(), nil
		},
	}

	rec := do(newRestaurantHTTPHandler(svc), http.MethodGet, "/restaurants/1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Restaurant
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, restaurantFixture(), got)
}

func TestGetRestaurant_404(t *testing.T) {
	svc := &mockRestaurantServicer{
		getByID: func(context.Context, int64) (domain.Restaurant, error) {
			return domain.Restaurant{}, domain.ErrNotFound
		},
	}

	rec := do(newRestaurantHTTPHandler(svc), http.MethodGet, "/restaurants/99", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Code)
}

func TestGetRestaurant_400_NonNumericID(t *testing.T) {
	rec := do(newRestaurantHTTPHandler(&mockRestaurantServicer{}), http.MethodGet, "/restaurants/abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- POST /recommendations -------------------------------------------------

func TestRecommend_200_WithFilters(t *testing.T) {
	var captured *domain.Filters
	svc := &mockRestaurantServicer{
		recommend: func(_ context.Context, f *domain.Filters) (domain.Buckets, error) {
			captured = f
			return domain.Buckets{Matched: []domain.Restaurant{restaurantFixture()}, Mode: domain.ModeStrict}, nil
		},
	}

	body := jsonBody(t, map[string]any{"filters": map[string]any{"area": "信義", "cuisine": "火鍋", "budget": 500}})
	rec := do(newRestaurantHTTPHandler(svc), http.MethodPost, "/recommendations", body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "信義", captured.Area)
	require.NotNil(t, captured.Budget)
	assert.Equal(t, 500, *captured.Budget)
	assert.Nil(t, captured.People)

	var got handler.RecommendResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, domain.ModeStrict, got.Mode)
	assert.Len(t, got.Matched, 1)
	assert.NotNil(t, got.Others, "others is an empty array, not null")
}

func TestRecommend_NoBodyMeansAbsentCriteria(t *testing.T) {
	called := false
	svc := &mockRestaurantServicer{
		recommend: func(_ context.Context, f *domain.Filters) (domain.Buckets, error) {
			called = true
			assert.Nil(t, f)
			return domain.Buckets{Mode: domain.ModeStrict}, nil
		},
	}

	rec := do(newRestaurantHTTPHandler(svc), http.MethodPost, "/recommendations", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRecommend_EmptyFiltersObjectIsPresent(t *testing.T) {
	svc := &mockRestaurantServicer{
		recommend: func(_ context.Context, f *domain.Filters) (domain.Buckets, error) {
			assert.NotNil(t, f, "an empty object is present-but-empty criteria")
			return domain.Buckets{Mode: domain.ModeStrict}, nil
		},
	}

	rec := do(newRestaurantHTTPHandler(svc), http.MethodPost, "/recommendations", bytes.NewBufferString(`{"filters":{}}`))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecommend_422_NegativeBudget(t *testing.T) {
	rec := do(newRestaurantHTTPHandler(&mockRestaurantServicer{}), http.MethodPost, "/recommendations",
		bytes.NewBufferString(`{"filters":{"budget":-5}}`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "validation_error", detail.Code)
	assert.True(t, strings.HasPrefix(detail.Message, "budget"), detail.Message)
}

func TestRecommend_400_MalformedJSON(t *testing.T) {
	rec := do(newRestaurantHTTPHandler(&mockRestaurantServicer{}), http.MethodPost, "/recommendations",
		bytes.NewBufferString(`not json`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommend_422_ServiceValidation(t *testing.T) {
	svc := &mockRestaurantServicer{
		recommend: func(context.Context, *domain.Filters) (domain.Buckets, error) {
			return domain.Buckets{}, errors.Join(errors.New("service.RestaurantService.Recommend"), domain.ErrValidation)
		},
	}

	rec := do(newRestaurantHTTPHandler(svc), http.MethodPost, "/recommendations", bytes.NewBufferString(`{}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

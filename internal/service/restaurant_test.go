package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/resrv/backend/internal/domain"
	"github.com/pkordes/resrv/backend/internal/repo"
	"github.com/pkordes/resrv/backend/internal/service"
)

// mockRestaurantRepo is a hand-written test double for repo.RestaurantRepo.
// Set only the function fields a test needs.
type mockRestaurantRepo struct {
	list    func(ctx context.Context) ([]domain.Restaurant, error)
	getByID func(ctx context.Context, id int64) (domain.Restaurant, error)
}

func (m *mockRestaurantRepo) List(ctx context.Context) ([]domain.Restaurant, error) {
	return m.list(ctx)
}
func (m *mockRestaurantRepo) GetByID(ctx context.Context, id int64) (domain.Restaurant, error) {
	return m.getByID(ctx, id)
}

// compile-time check
var _ repo.RestaurantRepo = (*mockRestaurantRepo)(nil)

func intPtr(i int) *int { return &i }

func catalogRepo(rs ...domain.Restaurant) *mockRestaurantRepo {
	return &mockRestaurantRepo{
		list: func(context.Context) ([]domain.Restaurant, error) { return rs, nil },
	}
}

func catalog() []domain.Restaurant {
	return []domain.Restaurant{
		{ID: 1, Name: "老四川", Cuisines: []string{"火鍋"}, Areas: []string{"信義"}},
		{ID: 2, Name: "鍋物研究室", Cuisines: []string{"鍋物"}, Areas: []string{"大安"}},
		{ID: 3, Name: "燒肉眾", Cuisines: []string{"燒肉"}, Areas: []string{"中山"}},
	}
}

// ---- Search ----------------------------------------------------------------

func TestRestaurantService_Search_PagesWholeCatalog(t *testing.T) {
	svc := service.NewRestaurantService(catalogRepo(catalog()...))
	page, limit := 2, 2

	got, total, err := svc.Search(context.Background(), "", domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
}

func TestRestaurantService_Search_FiltersByQuery(t *testing.T) {
	svc := service.NewRestaurantService(catalogRepo(catalog()...))

	got, total, err := svc.Search(context.Background(), "大安", domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestRestaurantService_Search_RepoError(t *testing.T) {
	boom := errors.New("boom")
	svc := service.NewRestaurantService(&mockRestaurantRepo{
		list: func(context.Context) ([]domain.Restaurant, error) { return nil, boom },
	})

	_, _, err := svc.Search(context.Background(), "", domain.NewPaginationParams(nil, nil))

	assert.ErrorIs(t, err, boom)
}

// ---- GetByID ---------------------------------------------------------------

func TestRestaurantService_GetByID_NotFound(t *testing.T) {
	svc := service.NewRestaurantService(&mockRestaurantRepo{
		getByID: func(context.Context, int64) (domain.Restaurant, error) {
			return domain.Restaurant{}, domain.ErrNotFound
		},
	})

	_, err := svc.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Recommend -------------------------------------------------------------

func TestRestaurantService_Recommend_NilCriteria(t *testing.T) {
	svc := service.NewRestaurantService(catalogRepo(catalog()...))

	got, err := svc.Recommend(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, domain.ModeStrict, got.Mode)
	assert.Len(t, got.Matched, 3)
}

func TestRestaurantService_Recommend_Fallback(t *testing.T) {
	svc := service.NewRestaurantService(catalogRepo(catalog()...))

	got, err := svc.Recommend(context.Background(), &domain.Filters{Area: "中山", Cuisine: "麻辣"})

	require.NoError(t, err)
	assert.Equal(t, domain.ModeFallback, got.Mode)
	assert.Empty(t, got.Matched)
	require.Len(t, got.Others, 2, "both hotpot restaurants share the group")
}

func TestRestaurantService_Recommend_NegativeBudget(t *testing.T) {
	svc := service.NewRestaurantService(&mockRestaurantRepo{})

	_, err := svc.Recommend(context.Background(), &domain.Filters{Budget: intPtr(-1)})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRestaurantService_Recommend_NegativePeople(t *testing.T) {
	svc := service.NewRestaurantService(&mockRestaurantRepo{})

	_, err := svc.Recommend(context.Background(), &domain.Filters{People: intPtr(-2)})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

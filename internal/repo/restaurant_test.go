package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/resrv/backend/internal/domain"
	"github.com/pkordes/resrv/backend/internal/repo"
	"github.com/pkordes/resrv/backend/testutil"
)

// newTestRepo returns a Postgres repo backed by a transaction that is rolled
// back when the test finishes. Skips when TEST_DATABASE_URL is not set.
func newTestRepo(t *testing.T) *repo.PGRestaurantRepo {
	t.Helper()
	return repo.NewRestaurantRepo(testutil.NewTx(t))
}

func restaurantFixture(id int64) domain.Restaurant {
	price, maxPeople, rating := 800, 10, 4.2
	return domain.Restaurant{
		ID:        id,
		Name:      "老四川",
		Location:  "台北市信義區",
		Cuisine:   "火鍋",
		Cuisines:  []string{"麻辣鍋", "火鍋"},
		Areas:     []string{"信義"},
		Occasions: []string{"聚餐"},
		Price:     &price,
		MaxPeople: &maxPeople,
		Rating:    &rating,
	}
}

func TestRestaurantRepo_Upsert_Create(t *testing.T) {
	r := newTestRepo(t)

	input := restaurantFixture(9001)
	got, err := r.Upsert(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestRestaurantRepo_Upsert_NullableColumns(t *testing.T) {
	r := newTestRepo(t)

	got, err := r.Upsert(context.Background(), domain.Restaurant{ID: 9002, Name: "Bar Nine"})

	require.NoError(t, err)
	assert.Nil(t, got.Price)
	assert.Nil(t, got.MaxPeople)
	assert.Nil(t, got.Rating)
	assert.Equal(t, []string{}, got.Cuisines)
}

func TestRestaurantRepo_Upsert_Overwrites(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.Upsert(ctx, restaurantFixture(9003))
	require.NoError(t, err)

	updated := restaurantFixture(9003)
	updated.Name = "老四川 二店"
	updated.Price = nil
	got, err := r.Upsert(ctx, updated)

	require.NoError(t, err)
	assert.Equal(t, "老四川 二店", got.Name)
	assert.Nil(t, got.Price)
}

func TestRestaurantRepo_GetByID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.Upsert(ctx, restaurantFixture(9004))
	require.NoError(t, err)

	got, err := r.GetByID(ctx, 9004)

	require.NoError(t, err)
	assert.Equal(t, restaurantFixture(9004), got)
}

func TestRestaurantRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetByID(context.Background(), -1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestaurantRepo_List_OrderedByID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	for _, id := range []int64{9007, 9005, 9006} {
		_, err := r.Upsert(ctx, restaurantFixture(id))
		require.NoError(t, err)
	}

	got, err := r.List(ctx)

	require.NoError(t, err)
	var seen []int64
	for _, rest := range got {
		if rest.ID >= 9005 && rest.ID <= 9007 {
			seen = append(seen, rest.ID)
		}
	}
	assert.Equal(t, []int64{9005, 9006, 9007}, seen)
}

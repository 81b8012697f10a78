package service

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipeshare_backend/models"
	"recipeshare_backend/store"
)

func newTestService(t *testing.T, opts ...Option) (*Recipes, *store.Memory) {
	t.Helper()
	m, err := store.NewMemory(store.Samples())
	require.NoError(t, err)
	return New(m, opts...), m
}

func validInput() models.NewRecipe {
	return models.NewRecipe{
		Title:        "Garlic Bread",
		CookTime:     "15 mins",
		Servings:     4,
		Difficulty:   "Easy",
		Author:       "Lee",
		Ingredients:  []string{"baguette", "garlic", "butter"},
		Instructions: []string{"Slice.", "Spread.", "Bake."},
	}
}

func titles(recipes []models.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Title)
	}
	return out
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for _, r := range svc.List(ctx) {
		seen[r.ID] = true
	}

	for i := 0; i < 20; i++ {
		r, err := svc.Create(ctx, validInput())
		require.NoError(t, err)
		require.NotEmpty(t, r.ID)
		assert.False(t, seen[r.ID], "id %s reused", r.ID)
		seen[r.ID] = true
	}
	assert.Len(t, svc.List(ctx), 23)
}

func TestCreateRoundTrip(t *testing.T) {
	svc, _ := newTestService(t, WithIDGenerator(func() string { return "fixed-id" }))
	ctx := context.Background()

	in := validInput()
	in.Ingredients = nil
	in.Instructions = nil

	created, err := svc.Create(ctx, in)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)

	want := models.Recipe{
		ID:           "fixed-id",
		Title:        in.Title,
		Image:        models.DefaultImage,
		CookTime:     in.CookTime,
		Servings:     in.Servings,
		Difficulty:   in.Difficulty,
		Author:       in.Author,
		Ingredients:  []string{},
		Instructions: []string{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get() after Create() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, created, got)
}

func TestCreateKeepsProvidedImage(t *testing.T) {
	svc, _ := newTestService(t)
	in := validInput()
	in.Image = "https://example.com/bread.jpg"

	r, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in.Image, r.Image)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.NewRecipe)
		missing []string
	}{
		{name: "title", mutate: func(in *models.NewRecipe) { in.Title = "" }, missing: []string{"title"}},
		{name: "cook time", mutate: func(in *models.NewRecipe) { in.CookTime = "" }, missing: []string{"cookTime"}},
		{name: "servings", mutate: func(in *models.NewRecipe) { in.Servings = 0 }, missing: []string{"servings"}},
		{name: "negative servings", mutate: func(in *models.NewRecipe) { in.Servings = -2 }, missing: []string{"servings"}},
		{name: "difficulty", mutate: func(in *models.NewRecipe) { in.Difficulty = "" }, missing: []string{"difficulty"}},
		{name: "author", mutate: func(in *models.NewRecipe) { in.Author = "" }, missing: []string{"author"}},
		{
			name:    "everything",
			mutate:  func(in *models.NewRecipe) { *in = models.NewRecipe{} },
			missing: []string{"title", "cookTime", "servings", "difficulty", "author"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t)
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), in)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.missing, vErr.Fields)
			assert.Equal(t, 3, m.Len(), "nothing must be stored on failure")
		})
	}
}

func TestCreateStoreFailure(t *testing.T) {
	svc, _ := newTestService(t, WithIDGenerator(func() string { return "1" }))

	_, err := svc.Create(context.Background(), validInput())
	require.ErrorIs(t, err, store.ErrDuplicateID)
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "nope")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nope", nf.ID)
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	before, err := svc.Get(ctx, "2")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "2", models.RecipePatch{
		Title:        models.String("Smash Burger"),
		Servings:     models.Int(3),
		Author:       models.String(""),
		Ingredients:  models.Strings(),
		Instructions: models.Strings("Smash.", "Flip."),
	})
	require.NoError(t, err)

	assert.Equal(t, "2", updated.ID)
	assert.Equal(t, "Smash Burger", updated.Title)
	assert.Equal(t, 3, updated.Servings)
	assert.Equal(t, before.Author, updated.Author, "empty string keeps prior value")
	assert.Equal(t, before.Ingredients, updated.Ingredients, "empty ingredients keep prior value")
	assert.Equal(t, []string{"Smash.", "Flip."}, updated.Instructions)

	got, err := svc.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), "nope", models.RecipePatch{Title: models.String("x")})

	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	deleted, err := svc.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Homemade Margherita Pizza", deleted.Title)

	var nf *NotFoundError
	_, err = svc.Get(ctx, "1")
	assert.ErrorAs(t, err, &nf)

	_, err = svc.Delete(ctx, "1")
	assert.ErrorAs(t, err, &nf)
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query returns all in order", query: "", want: []string{"Homemade Margherita Pizza", "Classic Beef Burger", "Fresh Summer Salad"}},
		{name: "title", query: "beef", want: []string{"Classic Beef Burger"}},
		{name: "case insensitive", query: "SUMMER", want: []string{"Fresh Summer Salad"}},
		{name: "author", query: "chef maria", want: []string{"Homemade Margherita Pizza"}},
		{name: "ingredient", query: "feta", want: []string{"Fresh Summer Salad"}},
		{name: "shared ingredient keeps collection order", query: "olive oil", want: []string{"Homemade Margherita Pizza", "Fresh Summer Salad"}},
		{name: "no match", query: "sushi", want: []string{}},
		{name: "instructions are not searched", query: "preheat", want: []string{}},
	}

	svc, _ := newTestService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Search(context.Background(), tt.query)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

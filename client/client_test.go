package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipeshare_backend/handlers"
	"recipeshare_backend/models"
	"recipeshare_backend/service"
	"recipeshare_backend/store"
)

func newAPI(t *testing.T) *Client {
	t.Helper()
	m, err := store.NewMemory(store.Samples())
	require.NoError(t, err)

	r := mux.NewRouter()
	handlers.Register(r.PathPrefix("/api").Subrouter(), service.New(m), nil)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return New(srv.URL + "/api/")
}

func TestNewDefaults(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("").BaseURL())
	assert.Equal(t, "http://example.com/api", New("http://example.com/api/").BaseURL())
}

func TestRecipeLifecycle(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	all, err := c.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	created, err := c.CreateRecipe(ctx, models.NewRecipe{
		Title:      "Lemonade",
		CookTime:   "5 mins",
		Servings:   6,
		Difficulty: "Easy",
		Author:     "Pat",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := c.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := c.UpdateRecipe(ctx, created.ID, models.RecipePatch{Servings: models.Int(8)})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Servings)

	found, err := c.SearchRecipes(ctx, "lemonade")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)

	// "lemon" also matches the salad's lemon juice; results keep store order.
	found, err = c.SearchRecipes(ctx, "lemon")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "3", found[0].ID)
	assert.Equal(t, created.ID, found[1].ID)

	deleted, err := c.DeleteRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = c.GetRecipe(ctx, created.ID)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestSearchEscapesQuery(t *testing.T) {
	c := newAPI(t)

	found, err := c.SearchRecipes(context.Background(), "beef (80/20)")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "2", found[0].ID)
}

func TestNonSuccessStatusIsGenericError(t *testing.T) {
	c := newAPI(t)

	_, err := c.CreateRecipe(context.Background(), models.NewRecipe{Title: "incomplete"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "create recipe", apiErr.Op)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "failed to create recipe: status 400", err.Error())
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := New(base).ListRecipes(context.Background())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New(srv.URL, WithTimeout(5*time.Second)).ListRecipes(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, WithUserAgent("test-agent")).ListRecipes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-agent", got)
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipeshare_backend/handlers"
	"recipeshare_backend/models"
	"recipeshare_backend/service"
	"recipeshare_backend/store"
)

func apiServer(t *testing.T) string {
	t.Helper()
	m, err := store.NewMemory(store.Samples())
	require.NoError(t, err)

	r := mux.NewRouter()
	handlers.Register(r.PathPrefix("/api").Subrouter(), service.New(m), nil)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func runApp(t *testing.T, base string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	full := append([]string{"recipes", "--server", base}, args...)
	err := newApp(&out).Run(context.Background(), full)
	return out.String(), err
}

func TestListAndSearch(t *testing.T) {
	base := apiServer(t)

	out, err := runApp(t, base, "list")
	require.NoError(t, err)
	var all []models.Recipe
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	assert.Len(t, all, 3)

	out, err = runApp(t, base, "search", "beef")
	require.NoError(t, err)
	var found []models.Recipe
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Classic Beef Burger", found[0].Title)
}

func TestCreateUpdateDelete(t *testing.T) {
	base := apiServer(t)

	out, err := runApp(t, base, "create",
		"--title", "Porridge",
		"--cook-time", "10 mins",
		"--servings", "2",
		"--difficulty", "Easy",
		"--author", "Ola",
		"--ingredient", "oats",
		"--ingredient", "milk",
		"--step", "Simmer oats in milk.",
	)
	require.NoError(t, err)
	var created models.Recipe
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, []string{"oats", "milk"}, created.Ingredients)
	assert.Equal(t, models.DefaultImage, created.Image)

	out, err = runApp(t, base, "update", "--servings", "3", created.ID)
	require.NoError(t, err)
	var updated models.Recipe
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, 3, updated.Servings)
	assert.Equal(t, "Porridge", updated.Title)

	_, err = runApp(t, base, "delete", created.ID)
	require.NoError(t, err)

	_, err = runApp(t, base, "get", created.ID)
	assert.EqualError(t, err, "failed to fetch recipe: status 404")
}

func TestCreateMissingFields(t *testing.T) {
	_, err := runApp(t, apiServer(t), "create", "--title", "Half")
	assert.EqualError(t, err, "failed to create recipe: status 400")
}

func TestMissingID(t *testing.T) {
	base := apiServer(t)
	for _, cmd := range []string{"get", "update", "delete"} {
		_, err := runApp(t, base, cmd)
		assert.ErrorIs(t, err, errMissingID, cmd)
	}
}

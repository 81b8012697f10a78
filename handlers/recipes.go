package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"recipeshare_backend/models"
	"recipeshare_backend/service"
)

const (
	msgNotFound       = "Recipe not found"
	msgMissingFields  = "Please provide all required fields"
	msgInvalidPayload = "Invalid request payload"
	msgInternal       = "Internal server error"
)

// Register mounts the recipe API on r. r is expected to be the /api subrouter.
func Register(r *mux.Router, svc *service.Recipes, images *ImageProxy) {
	r.HandleFunc("/recipes", func(w http.ResponseWriter, r *http.Request) {
		GetRecipes(svc, w, r)
	}).Methods(http.MethodGet).Name("list_recipes")

	r.HandleFunc("/recipes/{id}", func(w http.ResponseWriter, r *http.Request) {
		GetRecipe(svc, w, r)
	}).Methods(http.MethodGet).Name("get_recipe")

	r.HandleFunc("/recipes", func(w http.ResponseWriter, r *http.Request) {
		CreateRecipe(svc, w, r)
	}).Methods(http.MethodPost).Name("create_recipe")

	r.HandleFunc("/recipes/{id}", func(w http.ResponseWriter, r *http.Request) {
		UpdateRecipe(svc, w, r)
	}).Methods(http.MethodPut).Name("update_recipe")

	r.HandleFunc("/recipes/{id}", func(w http.ResponseWriter, r *http.Request) {
		DeleteRecipe(svc, w, r)
	}).Methods(http.MethodDelete).Name("delete_recipe")

	r.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		SearchRecipes(svc, w, r)
	}).Methods(http.MethodGet).Name("search_recipes")

	if images != nil {
		r.Handle("/image", images).Methods(http.MethodGet).Name("image")
	}
}

func GetRecipes(svc *service.Recipes, w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, svc.List(r.Context()))
}

func GetRecipe(svc *service.Recipes, w http.ResponseWriter, r *http.Request) {
	recipe, err := svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

func CreateRecipe(svc *service.Recipes, w http.ResponseWriter, r *http.Request) {
	var in models.NewRecipe
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		slog.Debug("failed to decode request body", "error", err)
		respondMessage(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}

	recipe, err := svc.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, recipe)
}

func UpdateRecipe(svc *service.Recipes, w http.ResponseWriter, r *http.Request) {
	var patch models.RecipePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		slog.Debug("failed to decode request body", "error", err)
		respondMessage(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}

	recipe, err := svc.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

func DeleteRecipe(svc *service.Recipes, w http.ResponseWriter, r *http.Request) {
	recipe, err := svc.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

func SearchRecipes(svc *service.Recipes, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	respondJSON(w, http.StatusOK, svc.Search(r.Context(), query))
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *service.NotFoundError
	var invalid *service.ValidationError
	switch {
	case errors.As(err, &notFound):
		respondMessage(w, http.StatusNotFound, msgNotFound)
	case errors.As(err, &invalid):
		respondMessage(w, http.StatusBadRequest, msgMissingFields)
	default:
		slog.Error("recipe request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		respondMessage(w, http.StatusInternalServerError, msgInternal)
	}
}

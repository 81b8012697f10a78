// Package service implements recipe validation, merging and search on top of
// a recipe store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"recipeshare_backend/models"
)

// Store is the storage the service needs. *store.Memory satisfies it.
type Store interface {
	List() []models.Recipe
	FindByID(id string) (models.Recipe, bool)
	Insert(r models.Recipe) error
	Update(id string, fn func(*models.Recipe)) (models.Recipe, bool)
	Remove(id string) (models.Recipe, bool)
}

// Recipes exposes create, read, update, delete and search over a Store.
type Recipes struct {
	store Store
	newID func() string
}

// Option configures Recipes.
type Option func(*Recipes)

// WithIDGenerator overrides how new recipe ids are produced.
func WithIDGenerator(fn func() string) Option {
	return func(s *Recipes) {
		s.newID = fn
	}
}

func New(store Store, opts ...Option) *Recipes {
	s := &Recipes{
		store: store,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Recipes) List(ctx context.Context) []models.Recipe {
	return s.store.List()
}

func (s *Recipes) Get(ctx context.Context, id string) (models.Recipe, error) {
	r, ok := s.store.FindByID(id)
	if !ok {
		return models.Recipe{}, &NotFoundError{ID: id}
	}
	return r, nil
}

// Create validates in, assigns a new id and applies defaults before storing.
func (s *Recipes) Create(ctx context.Context, in models.NewRecipe) (models.Recipe, error) {
	if missing := missingFields(in); len(missing) > 0 {
		slog.DebugContext(ctx, "rejected recipe", "missing", missing)
		return models.Recipe{}, &ValidationError{Fields: missing}
	}

	r := models.Recipe{
		ID:           s.newID(),
		Title:        in.Title,
		Image:        in.Image,
		CookTime:     in.CookTime,
		Servings:     in.Servings,
		Difficulty:   in.Difficulty,
		Author:       in.Author,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
	}
	if r.Image == "" {
		r.Image = models.DefaultImage
	}
	r = r.Clone()

	if err := s.store.Insert(r); err != nil {
		return models.Recipe{}, fmt.Errorf("failed to store recipe: %w", err)
	}

	slog.DebugContext(ctx, "created recipe", "id", r.ID, "title", r.Title)
	return r, nil
}

func missingFields(in models.NewRecipe) []string {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.CookTime == "" {
		missing = append(missing, "cookTime")
	}
	if in.Servings <= 0 {
		missing = append(missing, "servings")
	}
	if in.Difficulty == "" {
		missing = append(missing, "difficulty")
	}
	if in.Author == "" {
		missing = append(missing, "author")
	}
	return missing
}

// Update merges patch into the stored recipe. See models.RecipePatch.ApplyTo
// for which values overwrite.
func (s *Recipes) Update(ctx context.Context, id string, patch models.RecipePatch) (models.Recipe, error) {
	r, ok := s.store.Update(id, patch.ApplyTo)
	if !ok {
		return models.Recipe{}, &NotFoundError{ID: id}
	}
	slog.DebugContext(ctx, "updated recipe", "id", id)
	return r, nil
}

func (s *Recipes) Delete(ctx context.Context, id string) (models.Recipe, error) {
	r, ok := s.store.Remove(id)
	if !ok {
		return models.Recipe{}, &NotFoundError{ID: id}
	}
	slog.DebugContext(ctx, "deleted recipe", "id", id)
	return r, nil
}

// Search returns recipes whose title, author or any ingredient contains query,
// ignoring case, in collection order. An empty query returns everything.
func (s *Recipes) Search(ctx context.Context, query string) []models.Recipe {
	all := s.store.List()
	if query == "" {
		return all
	}

	term := strings.ToLower(query)
	matches := make([]models.Recipe, 0, len(all))
	for _, r := range all {
		if matchesTerm(r, term) {
			matches = append(matches, r)
		}
	}
	slog.DebugContext(ctx, "searched recipes", "query", query, "matches", len(matches))
	return matches
}

func matchesTerm(r models.Recipe, term string) bool {
	if strings.Contains(strings.ToLower(r.Title), term) ||
		strings.Contains(strings.ToLower(r.Author), term) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), term) {
			return true
		}
	}
	return false
}

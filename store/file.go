package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"recipeshare_backend/models"
)

// LoadFile reads a JSON array of recipes from path. Comments and trailing
// commas are allowed.
func LoadFile(path string) ([]models.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a JSON-with-comments array of recipes.
func ParseSeed(data []byte) ([]models.Recipe, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid seed data: %w", err)
	}

	var recipes []models.Recipe
	if err := json.Unmarshal(std, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode seed recipes: %w", err)
	}
	for i := range recipes {
		if recipes[i].ID == "" {
			return nil, fmt.Errorf("seed recipe at index %d has no id", i)
		}
		if recipes[i].Image == "" {
			recipes[i].Image = models.DefaultImage
		}
		recipes[i] = recipes[i].Clone()
	}
	return recipes, nil
}

package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"recipeshare_backend/models"
)

// LoadFirestore reads every document of collection once. Documents without an
// id field take the document id. Nothing is ever written back.
func LoadFirestore(ctx context.Context, client *firestore.Client, collection string) ([]models.Recipe, error) {
	var recipes []models.Recipe

	iter := client.Collection(collection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", collection, err)
		}

		var recipe models.Recipe
		if err := doc.DataTo(&recipe); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", doc.Ref.ID, err)
		}
		if recipe.ID == "" {
			recipe.ID = doc.Ref.ID
		}
		if recipe.Image == "" {
			recipe.Image = models.DefaultImage
		}

		recipes = append(recipes, recipe.Clone())
	}

	return recipes, nil
}

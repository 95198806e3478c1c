package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/services"
	"github.com/yungbote/kitchenlink-backend/internal/types"
)

// loadSeedData reads tags.json and ingredients.json from the seed
// directory and inserts them when the catalog tables are empty. Either
// file may be absent.
func loadSeedData(ctx context.Context, log *logger.Logger, dir string, catalog services.CatalogService) error {
	tags, err := readSeedFile[types.Tag](filepath.Join(dir, "tags.json"))
	if err != nil {
		return fmt.Errorf("read tag seed: %w", err)
	}
	ingredients, err := readSeedFile[types.Ingredient](filepath.Join(dir, "ingredients.json"))
	if err != nil {
		return fmt.Errorf("read ingredient seed: %w", err)
	}
	if len(tags) == 0 && len(ingredients) == 0 {
		return nil
	}
	log.Info("Seeding catalog data...", "tags", len(tags), "ingredients", len(ingredients))
	return catalog.Seed(ctx, tags, ingredients)
}

func readSeedFile[T any](path string) ([]*T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var rows []*T
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/repos"
	"github.com/yungbote/kitchenlink-backend/internal/types"
)

func TestRecipeCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.createUser(t, "alice")
	tag, sugar, flour := env.seedCatalog(t)

	input := recipeInput("Pancakes", tag,
		types.IngredientAmountInput{ID: sugar.ID, Amount: 100},
		types.IngredientAmountInput{ID: flour.ID, Amount: 300},
	)
	view, err := env.recipes.Create(ctx, author.ID, input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Name != "Pancakes" || view.CookingTime != 15 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if len(view.Tags) != 1 || view.Tags[0].Slug != "dinner" {
		t.Fatalf("tags not attached: %+v", view.Tags)
	}
	if len(view.Ingredients) != 2 {
		t.Fatalf("want 2 ingredient lines, got %+v", view.Ingredients)
	}
	if view.Author.Username != "alice" {
		t.Fatalf("author not resolved: %+v", view.Author)
	}
	if !strings.HasPrefix(view.Image, "https://img.test/recipes/") {
		t.Fatalf("image url not from store: %q", view.Image)
	}
	if len(env.images.objects) != 1 {
		t.Fatalf("want 1 stored image, got %d", len(env.images.objects))
	}
}

func TestRecipeCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.createUser(t, "alice")
	tag, sugar, _ := env.seedCatalog(t)
	line := types.IngredientAmountInput{ID: sugar.ID, Amount: 100}

	tests := []struct {
		name   string
		mutate func(*types.RecipeInput)
		field  string
		code   string
	}{
		{"missing name", func(in *types.RecipeInput) { in.Name = nil }, "name", "validation_error"},
		{"missing image", func(in *types.RecipeInput) { in.Image = nil }, "image", "validation_error"},
		{"zero cooking time", func(in *types.RecipeInput) { z := 0; in.CookingTime = &z }, "cooking_time", "validation_error"},
		{"no tags", func(in *types.RecipeInput) { in.Tags = nil }, "tags", "validation_error"},
		{"no ingredients", func(in *types.RecipeInput) { in.Ingredients = nil }, "ingredients", "validation_error"},
		{"duplicate ingredient", func(in *types.RecipeInput) {
			in.Ingredients = append(in.Ingredients, line)
		}, "ingredients", "validation_error"},
		{"unknown tag", func(in *types.RecipeInput) {
			in.Tags = []uuid.UUID{uuid.New()}
		}, "", "not_found"},
		{"unknown ingredient", func(in *types.RecipeInput) {
			in.Ingredients = []types.IngredientAmountInput{{ID: uuid.New(), Amount: 5}}
		}, "", "not_found"},
		{"malformed image", func(in *types.RecipeInput) {
			bad := "not-a-data-uri"
			in.Image = &bad
		}, "image", "validation_error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := recipeInput("Pancakes", tag, line)
			tc.mutate(&input)
			_, err := env.recipes.Create(ctx, author.ID, input)
			apiErr := wantAPIError(t, err, http.StatusBadRequest, tc.code)
			if apiErr.Field != tc.field {
				t.Fatalf("field: want %q, got %q", tc.field, apiErr.Field)
			}
		})
	}

	// Nothing may exist after the failed attempts.
	count, err := env.recipeRepo.Count(ctx, nil, repos.RecipeFilter{})
	if err != nil || count != 0 {
		t.Fatalf("recipes after failures: want 0, got (%d, %v)", count, err)
	}
}

func TestRecipeUpdateReplacesAggregate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.createUser(t, "alice")
	tag, sugar, flour := env.seedCatalog(t)

	created, err := env.recipes.Create(ctx, author.ID, recipeInput("Cake", tag,
		types.IngredientAmountInput{ID: sugar.ID, Amount: 100},
		types.IngredientAmountInput{ID: flour.ID, Amount: 200},
	))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Scalars omitted: stored values survive. Lines are replaced wholesale.
	updated, err := env.recipes.Update(ctx, created.ID, author.ID, types.RecipeInput{
		Tags:        []uuid.UUID{tag.ID},
		Ingredients: []types.IngredientAmountInput{{ID: flour.ID, Amount: 500}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Cake" || updated.CookingTime != 15 {
		t.Fatalf("scalars should be unchanged: %+v", updated)
	}
	if len(updated.Ingredients) != 1 || updated.Ingredients[0].Amount != 500 {
		t.Fatalf("lines not replaced: %+v", updated.Ingredients)
	}

	// Omitting tags or ingredients on update is an error, not a no-op.
	_, err = env.recipes.Update(ctx, created.ID, author.ID, types.RecipeInput{
		Ingredients: []types.IngredientAmountInput{{ID: flour.ID, Amount: 500}},
	})
	wantAPIError(t, err, http.StatusBadRequest, "validation_error")
}

func TestRecipeUpdateAuthorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.createUser(t, "alice")
	intruder := env.createUser(t, "bob")
	tag, sugar, _ := env.seedCatalog(t)

	created, err := env.recipes.Create(ctx, author.ID, recipeInput("Cake", tag,
		types.IngredientAmountInput{ID: sugar.ID, Amount: 100},
	))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	input := types.RecipeInput{
		Tags:        []uuid.UUID{tag.ID},
		Ingredients: []types.IngredientAmountInput{{ID: sugar.ID, Amount: 1}},
	}
	_, err = env.recipes.Update(ctx, created.ID, intruder.ID, input)
	wantAPIError(t, err, http.StatusForbidden, "permission_denied")

	_, err = env.recipes.Update(ctx, uuid.New(), author.ID, input)
	wantAPIError(t, err, http.StatusNotFound, "not_found")

	err = env.recipes.Delete(ctx, created.ID, intruder.ID)
	wantAPIError(t, err, http.StatusForbidden, "permission_denied")
}

func TestRecipeUpdateReplacesImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.createUser(t, "alice")
	tag, sugar, _ := env.seedCatalog(t)

	created, err := env.recipes.Create(ctx, author.ID, recipeInput("Cake", tag,
		types.IngredientAmountInput{ID: sugar.ID, Amount: 100},
	))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	image := testImage()
	_, err = env.recipes.Update(ctx, created.ID, author.ID, types.RecipeInput{
		Image:       &image,
		Tags:        []uuid.UUID{tag.ID},
		Ingredients: []types.IngredientAmountInput{{ID: sugar.ID, Amount: 100}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(env.images.objects) != 1 {
		t.Fatalf("old image should be gone, store holds %d objects", len(env.images.objects))
	}
	if len(env.images.deleted) != 1 {
		t.Fatalf("want 1 deleted key, got %v", env.images.deleted)
	}
}

func TestRecipeDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.createUser(t, "alice")
	tag, sugar, _ := env.seedCatalog(t)

	created, err := env.recipes.Create(ctx, author.ID, recipeInput("Cake", tag,
		types.IngredientAmountInput{ID: sugar.ID, Amount: 100},
	))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := env.recipes.Delete(ctx, created.ID, author.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = env.recipes.Get(ctx, created.ID, author.ID)
	wantAPIError(t, err, http.StatusNotFound, "not_found")
	if len(env.images.objects) != 0 {
		t.Fatalf("image should be removed with the recipe")
	}

	err = env.recipes.Delete(ctx, created.ID, author.ID)
	wantAPIError(t, err, http.StatusNotFound, "not_found")
}

func TestRecipeCreateFailedImageUpload(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.createUser(t, "alice")
	tag, sugar, _ := env.seedCatalog(t)

	env.images.failSave = true
	_, err := env.recipes.Create(ctx, author.ID, recipeInput("Cake", tag,
		types.IngredientAmountInput{ID: sugar.ID, Amount: 100},
	))
	if err == nil {
		t.Fatalf("want error when image store fails")
	}
	count, cerr := env.recipeRepo.Count(ctx, nil, repos.RecipeFilter{})
	if cerr != nil || count != 0 {
		t.Fatalf("no recipe row may exist: (%d, %v)", count, cerr)
	}
}

// lineWriteFailRepo refuses to write ingredient lines, forcing the
// surrounding transaction to roll back.
type lineWriteFailRepo struct {
	repos.RecipeRepo
}

func (lineWriteFailRepo) CreateLines(ctx context.Context, tx *gorm.DB, lines []*types.IngredientLine) error {
	return errors.New("lines unavailable")
}

func TestRecipeUpdateRollbackRemovesNewImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.createUser(t, "alice")
	tag, sugar, _ := env.seedCatalog(t)

	created, err := env.recipes.Create(ctx, author.ID, recipeInput("Cake", tag,
		types.IngredientAmountInput{ID: sugar.ID, Amount: 100},
	))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	broken := NewRecipeService(env.db, logger.NewNop(), lineWriteFailRepo{env.recipeRepo},
		env.tagRepo, env.ingredientRepo, env.favoriteRepo, env.cartRepo,
		env.subscriptionRepo, env.images)

	image := testImage()
	_, err = broken.Update(ctx, created.ID, author.ID, types.RecipeInput{
		Image:       &image,
		Tags:        []uuid.UUID{tag.ID},
		Ingredients: []types.IngredientAmountInput{{ID: sugar.ID, Amount: 100}},
	})
	if err == nil {
		t.Fatalf("want error when the transaction fails")
	}

	// The replacement upload was removed; the original object stays put.
	if len(env.images.objects) != 1 {
		t.Fatalf("store should hold only the original image, got %d objects", len(env.images.objects))
	}
	if len(env.images.deleted) != 1 {
		t.Fatalf("want 1 deleted key, got %v", env.images.deleted)
	}
	stored, err := env.recipeRepo.GetByID(ctx, nil, created.ID)
	if err != nil || stored == nil {
		t.Fatalf("GetByID: (%v, %v)", stored, err)
	}
	if _, ok := env.images.objects[stored.ImageKey]; !ok {
		t.Fatalf("recipe image key %q is not in the store", stored.ImageKey)
	}
	if stored.ImageKey == env.images.deleted[0] {
		t.Fatalf("recipe still points at the rolled-back image %q", stored.ImageKey)
	}
}

func TestRecipeListFlags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.createUser(t, "alice")
	viewer := env.createUser(t, "bob")
	tag, sugar, _ := env.seedCatalog(t)

	created, err := env.recipes.Create(ctx, author.ID, recipeInput("Cake", tag,
		types.IngredientAmountInput{ID: sugar.ID, Amount: 100},
	))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := env.favorites.Add(ctx, viewer.ID, created.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if _, err := env.subscriptions.Subscribe(ctx, viewer.ID, author.ID, 0); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	views, count, err := env.recipes.List(ctx, repos.RecipeFilter{}, viewer.ID)
	if err != nil || count != 1 || len(views) != 1 {
		t.Fatalf("List as viewer: (%d views, count %d, %v)", len(views), count, err)
	}
	if !views[0].IsFavorited || views[0].IsInShoppingCart {
		t.Fatalf("viewer flags wrong: %+v", views[0])
	}
	if !views[0].Author.IsSubscribed {
		t.Fatalf("viewer should be subscribed to author")
	}

	// Anonymous: all flags false.
	views, _, err = env.recipes.List(ctx, repos.RecipeFilter{}, uuid.Nil)
	if err != nil {
		t.Fatalf("List anonymous: %v", err)
	}
	if views[0].IsFavorited || views[0].IsInShoppingCart || views[0].Author.IsSubscribed {
		t.Fatalf("anonymous flags must be false: %+v", views[0])
	}
}

package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kitchenlink-backend/internal/apierr"
	"github.com/yungbote/kitchenlink-backend/internal/db"
	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/repos"
	"github.com/yungbote/kitchenlink-backend/internal/types"
)

// fakeImageStore records saves and deletes in memory.
type fakeImageStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	deleted  []string
	failSave bool
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{objects: map[string][]byte{}}
}

func (f *fakeImageStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return "", errors.New("store unavailable")
	}
	f.objects[key] = data
	return "https://img.test/" + key, nil
}

func (f *fakeImageStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

type testEnv struct {
	db     *gorm.DB
	images *fakeImageStore

	userRepo         repos.UserRepo
	tagRepo          repos.TagRepo
	ingredientRepo   repos.IngredientRepo
	recipeRepo       repos.RecipeRepo
	favoriteRepo     repos.FavoriteRepo
	cartRepo         repos.CartRepo
	subscriptionRepo repos.SubscriptionRepo

	users         UserService
	catalog       CatalogService
	recipes       RecipeService
	favorites     FavoriteService
	carts         CartService
	subscriptions SubscriptionService
	shopping      ShoppingListService
	identity      IdentityService
}

const testJWTSecret = "test-secret"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.NewMemoryDB()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	log := logger.NewNop()

	env := &testEnv{
		db:               gdb,
		images:           newFakeImageStore(),
		userRepo:         repos.NewUserRepo(gdb, log),
		tagRepo:          repos.NewTagRepo(gdb, log),
		ingredientRepo:   repos.NewIngredientRepo(gdb, log),
		recipeRepo:       repos.NewRecipeRepo(gdb, log),
		favoriteRepo:     repos.NewFavoriteRepo(gdb, log),
		cartRepo:         repos.NewCartRepo(gdb, log),
		subscriptionRepo: repos.NewSubscriptionRepo(gdb, log),
	}
	env.users = NewUserService(gdb, log, env.userRepo, env.subscriptionRepo)
	env.catalog = NewCatalogService(gdb, log, env.tagRepo, env.ingredientRepo, nil)
	env.recipes = NewRecipeService(gdb, log, env.recipeRepo, env.tagRepo, env.ingredientRepo,
		env.favoriteRepo, env.cartRepo, env.subscriptionRepo, env.images)
	env.favorites = NewFavoriteService(log, env.favoriteRepo, env.recipeRepo)
	env.carts = NewCartService(log, env.cartRepo, env.recipeRepo)
	env.subscriptions = NewSubscriptionService(log, env.subscriptionRepo, env.userRepo, env.recipeRepo)
	env.shopping = NewShoppingListService(log, env.cartRepo)
	env.identity = NewIdentityService(log, env.userRepo, testJWTSecret)
	return env
}

var userSeq int

func (env *testEnv) createUser(t *testing.T, username string) *types.User {
	t.Helper()
	userSeq++
	if username == "" {
		username = fmt.Sprintf("user%d", userSeq)
	}
	user := &types.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
	}
	if err := env.userRepo.Create(context.Background(), nil, user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func (env *testEnv) seedCatalog(t *testing.T) (*types.Tag, *types.Ingredient, *types.Ingredient) {
	t.Helper()
	tag := &types.Tag{ID: uuid.New(), Name: "Dinner", Slug: "dinner", Color: "#49B64E"}
	sugar := &types.Ingredient{ID: uuid.New(), Name: "Sugar", MeasurementUnit: "g"}
	flour := &types.Ingredient{ID: uuid.New(), Name: "Flour", MeasurementUnit: "g"}
	if err := env.tagRepo.Create(context.Background(), nil, []*types.Tag{tag}); err != nil {
		t.Fatalf("seed tag: %v", err)
	}
	if err := env.ingredientRepo.Create(context.Background(), nil, []*types.Ingredient{sugar, flour}); err != nil {
		t.Fatalf("seed ingredients: %v", err)
	}
	return tag, sugar, flour
}

func testImage() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png bytes"))
}

func recipeInput(name string, tag *types.Tag, lines ...types.IngredientAmountInput) types.RecipeInput {
	text := "How to cook " + name
	cookingTime := 15
	image := testImage()
	return types.RecipeInput{
		Name:        &name,
		Text:        &text,
		CookingTime: &cookingTime,
		Image:       &image,
		Tags:        []uuid.UUID{tag.ID},
		Ingredients: lines,
	}
}

func wantAPIError(t *testing.T, err error, status int, code string) *apierr.Error {
	t.Helper()
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *apierr.Error, got %T: %v", err, err)
	}
	if apiErr.Status != status || apiErr.Code != code {
		t.Fatalf("want (%d, %s), got (%d, %s): %v", status, code, apiErr.Status, apiErr.Code, apiErr)
	}
	return apiErr
}

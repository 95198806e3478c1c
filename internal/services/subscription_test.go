package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/kitchenlink-backend/internal/types"
)

func TestSubscribe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	follower := env.createUser(t, "follower")
	author := env.createUser(t, "author")
	tag, sugar, _ := env.seedCatalog(t)

	for _, name := range []string{"First", "Second", "Third"} {
		if _, err := env.recipes.Create(ctx, author.ID, recipeInput(name, tag,
			types.IngredientAmountInput{ID: sugar.ID, Amount: 10},
		)); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	view, err := env.subscriptions.Subscribe(ctx, follower.ID, author.ID, 2)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if !view.IsSubscribed || view.Username != "author" {
		t.Fatalf("author view wrong: %+v", view)
	}
	if view.RecipesCount != 3 {
		t.Fatalf("recipes_count: want 3, got %d", view.RecipesCount)
	}
	if len(view.Recipes) != 2 {
		t.Fatalf("recipes preview capped at 2, got %d", len(view.Recipes))
	}

	_, err = env.subscriptions.Subscribe(ctx, follower.ID, author.ID, 0)
	wantAPIError(t, err, http.StatusBadRequest, "conflict")
}

func TestSubscribeEdgeCases(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "loner")

	_, err := env.subscriptions.Subscribe(ctx, user.ID, user.ID, 0)
	apiErr := wantAPIError(t, err, http.StatusBadRequest, "validation_error")
	if apiErr.Field != "author" {
		t.Fatalf("field: want author, got %q", apiErr.Field)
	}

	_, err = env.subscriptions.Subscribe(ctx, user.ID, uuid.New(), 0)
	wantAPIError(t, err, http.StatusNotFound, "not_found")
}

func TestUnsubscribe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	follower := env.createUser(t, "follower")
	author := env.createUser(t, "author")

	if _, err := env.subscriptions.Subscribe(ctx, follower.ID, author.ID, 0); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := env.subscriptions.Unsubscribe(ctx, follower.ID, author.ID); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}

	err := env.subscriptions.Unsubscribe(ctx, follower.ID, author.ID)
	wantAPIError(t, err, http.StatusBadRequest, "conflict")

	err = env.subscriptions.Unsubscribe(ctx, follower.ID, uuid.New())
	wantAPIError(t, err, http.StatusNotFound, "not_found")
}

func TestSubscriptionList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	follower := env.createUser(t, "follower")
	first := env.createUser(t, "author_one")
	second := env.createUser(t, "author_two")

	if _, err := env.subscriptions.Subscribe(ctx, follower.ID, first.ID, 0); err != nil {
		t.Fatalf("subscribe one: %v", err)
	}
	if _, err := env.subscriptions.Subscribe(ctx, follower.ID, second.ID, 0); err != nil {
		t.Fatalf("subscribe two: %v", err)
	}

	views, count, err := env.subscriptions.List(ctx, follower.ID, 0, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if count != 2 || len(views) != 2 {
		t.Fatalf("want 2 subscriptions, got (count %d, %d views)", count, len(views))
	}
	for _, v := range views {
		if !v.IsSubscribed {
			t.Fatalf("listed author must be flagged subscribed: %+v", v)
		}
	}

	// Pagination applies to authors, not recipes.
	views, count, err = env.subscriptions.List(ctx, follower.ID, 1, 1, 0)
	if err != nil || count != 2 || len(views) != 1 {
		t.Fatalf("page 2: want (count 2, 1 view), got (%d, %d, %v)", count, len(views), err)
	}
}

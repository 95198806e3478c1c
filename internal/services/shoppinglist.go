package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/kitchenlink-backend/internal/apierr"
	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/repos"
)

// ShoppingListService renders the user's cart as a downloadable document:
// ingredient amounts are merged across every carted recipe into one
// consolidated list, sorted by ingredient name. (The alternative rendering
// with one section per recipe was deliberately not kept; a shopping list
// is about totals.)
type ShoppingListService interface {
	Render(ctx context.Context, userID uuid.UUID) ([]byte, string, error)
}

type shoppingListService struct {
	log      *logger.Logger
	cartRepo repos.CartRepo
}

func NewShoppingListService(log *logger.Logger, cartRepo repos.CartRepo) ShoppingListService {
	return &shoppingListService{
		log:      log.With("service", "ShoppingListService"),
		cartRepo: cartRepo,
	}
}

const shoppingListFilename = "shopping_list.txt"

func (sl *shoppingListService) Render(ctx context.Context, userID uuid.UUID) ([]byte, string, error) {
	hasItems, err := sl.cartRepo.HasAny(ctx, nil, userID)
	if err != nil {
		return nil, "", err
	}
	if !hasItems {
		return nil, "", apierr.Validation("shopping_cart", "shopping cart is empty, nothing to export")
	}

	lines, err := sl.cartRepo.AggregateIngredients(ctx, nil, userID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	buf.WriteString("Shopping list\n")
	buf.WriteString("=============\n\n")
	for i, line := range lines {
		fmt.Fprintf(&buf, "%d. %s: %d %s\n", i+1, line.Name, line.Total, line.MeasurementUnit)
	}
	return buf.Bytes(), shoppingListFilename, nil
}

package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/kitchenlink-backend/internal/apierr"
	"github.com/yungbote/kitchenlink-backend/internal/repos"
	"github.com/yungbote/kitchenlink-backend/internal/requestdata"
	"github.com/yungbote/kitchenlink-backend/internal/services"
	"github.com/yungbote/kitchenlink-backend/internal/types"
)

type RecipeHandler struct {
	recipeService       services.RecipeService
	favoriteService     services.FavoriteService
	cartService         services.CartService
	shoppingListService services.ShoppingListService
	pageConfig          PageConfig
}

func NewRecipeHandler(
	recipeService services.RecipeService,
	favoriteService services.FavoriteService,
	cartService services.CartService,
	shoppingListService services.ShoppingListService,
	pageConfig PageConfig,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:       recipeService,
		favoriteService:     favoriteService,
		cartService:         cartService,
		shoppingListService: shoppingListService,
		pageConfig:          pageConfig,
	}
}

// List serves the recipe catalog with tag, author and membership filters.
// The membership filters only apply to authenticated callers; anonymous
// requests ignore them rather than erroring.
func (rh *RecipeHandler) List(c *gin.Context) {
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	params := ParsePageParams(c, rh.pageConfig)

	filter := repos.RecipeFilter{
		TagSlugs: c.QueryArray("tags"),
		Offset:   params.Offset,
		Limit:    params.Limit,
	}
	for _, raw := range c.QueryArray("author") {
		authorID, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, apierr.Validation("author", "invalid author id %q", raw))
			return
		}
		filter.AuthorIDs = append(filter.AuthorIDs, authorID)
	}
	if currentUserID != uuid.Nil {
		if truthy(c.Query("is_favorited")) {
			filter.FavoritedBy = currentUserID
		}
		if truthy(c.Query("is_in_shopping_cart")) {
			filter.InCartOf = currentUserID
		}
	}

	views, count, err := rh.recipeService.List(c.Request.Context(), filter, currentUserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Paginated(c, count, params, views))
}

func (rh *RecipeHandler) Create(c *gin.Context) {
	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.Validation("body", "malformed request body"))
		return
	}
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	view, err := rh.recipeService.Create(c.Request.Context(), currentUserID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (rh *RecipeHandler) Get(c *gin.Context) {
	recipeID, apiErr := parseIDParam(c, "id")
	if apiErr != nil {
		RespondError(c, apiErr)
		return
	}
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	view, err := rh.recipeService.Get(c.Request.Context(), recipeID, currentUserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (rh *RecipeHandler) Update(c *gin.Context) {
	recipeID, apiErr := parseIDParam(c, "id")
	if apiErr != nil {
		RespondError(c, apiErr)
		return
	}
	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.Validation("body", "malformed request body"))
		return
	}
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	view, err := rh.recipeService.Update(c.Request.Context(), recipeID, currentUserID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (rh *RecipeHandler) Delete(c *gin.Context) {
	recipeID, apiErr := parseIDParam(c, "id")
	if apiErr != nil {
		RespondError(c, apiErr)
		return
	}
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	if err := rh.recipeService.Delete(c.Request.Context(), recipeID, currentUserID); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rh *RecipeHandler) AddFavorite(c *gin.Context) {
	rh.addMembership(c, rh.favoriteService.Add)
}

func (rh *RecipeHandler) RemoveFavorite(c *gin.Context) {
	rh.removeMembership(c, rh.favoriteService.Remove)
}

func (rh *RecipeHandler) AddToCart(c *gin.Context) {
	rh.addMembership(c, rh.cartService.Add)
}

func (rh *RecipeHandler) RemoveFromCart(c *gin.Context) {
	rh.removeMembership(c, rh.cartService.Remove)
}

// DownloadShoppingCart streams the merged shopping list as a text
// attachment.
func (rh *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	data, filename, err := rh.shoppingListService.Render(c.Request.Context(), currentUserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}

func (rh *RecipeHandler) addMembership(
	c *gin.Context,
	add func(ctx context.Context, userID, recipeID uuid.UUID) (*types.ShortRecipeView, error),
) {
	recipeID, apiErr := parseIDParam(c, "id")
	if apiErr != nil {
		RespondError(c, apiErr)
		return
	}
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	view, err := add(c.Request.Context(), currentUserID, recipeID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (rh *RecipeHandler) removeMembership(
	c *gin.Context,
	remove func(ctx context.Context, userID, recipeID uuid.UUID) error,
) {
	recipeID, apiErr := parseIDParam(c, "id")
	if apiErr != nil {
		RespondError(c, apiErr)
		return
	}
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	if err := remove(c.Request.Context(), currentUserID, recipeID); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func truthy(value string) bool {
	return value == "1" || value == "true" || value == "True"
}

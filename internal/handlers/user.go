package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/kitchenlink-backend/internal/apierr"
	"github.com/yungbote/kitchenlink-backend/internal/requestdata"
	"github.com/yungbote/kitchenlink-backend/internal/services"
	"github.com/yungbote/kitchenlink-backend/internal/types"
)

type UserHandler struct {
	userService         services.UserService
	subscriptionService services.SubscriptionService
	pageConfig          PageConfig
}

func NewUserHandler(
	userService services.UserService,
	subscriptionService services.SubscriptionService,
	pageConfig PageConfig,
) *UserHandler {
	return &UserHandler{
		userService:         userService,
		subscriptionService: subscriptionService,
		pageConfig:          pageConfig,
	}
}

func (uh *UserHandler) List(c *gin.Context) {
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	params := ParsePageParams(c, uh.pageConfig)
	views, count, err := uh.userService.List(c.Request.Context(), currentUserID, params.Offset, params.Limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Paginated(c, count, params, views))
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	me, err := uh.userService.GetMe(c.Request.Context(), currentUserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, me)
}

func (uh *UserHandler) UpdateMe(c *gin.Context) {
	var input types.UserUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.Validation("body", "malformed request body"))
		return
	}
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	me, err := uh.userService.UpdateMe(c.Request.Context(), currentUserID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, me)
}

func (uh *UserHandler) GetByID(c *gin.Context) {
	userID, apiErr := parseIDParam(c, "id")
	if apiErr != nil {
		RespondError(c, apiErr)
		return
	}
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	view, err := uh.userService.GetByID(c.Request.Context(), userID, currentUserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Subscriptions lists the authors the caller follows, each with a preview
// of their recipes capped by the recipes_limit query parameter.
func (uh *UserHandler) Subscriptions(c *gin.Context) {
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	params := ParsePageParams(c, uh.pageConfig)
	views, count, err := uh.subscriptionService.List(
		c.Request.Context(), currentUserID, params.Offset, params.Limit, recipesLimit(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Paginated(c, count, params, views))
}

func (uh *UserHandler) Subscribe(c *gin.Context) {
	authorID, apiErr := parseIDParam(c, "id")
	if apiErr != nil {
		RespondError(c, apiErr)
		return
	}
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	view, err := uh.subscriptionService.Subscribe(c.Request.Context(), currentUserID, authorID, recipesLimit(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (uh *UserHandler) Unsubscribe(c *gin.Context) {
	authorID, apiErr := parseIDParam(c, "id")
	if apiErr != nil {
		RespondError(c, apiErr)
		return
	}
	currentUserID := requestdata.CurrentUserID(c.Request.Context())
	if err := uh.subscriptionService.Unsubscribe(c.Request.Context(), currentUserID, authorID); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// recipesLimit parses the recipes_limit query parameter; zero means no cap.
func recipesLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

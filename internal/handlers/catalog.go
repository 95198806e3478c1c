package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/kitchenlink-backend/internal/services"
)

// CatalogHandler serves the read-only tag and ingredient reference data.
// Neither listing is paginated: tags are a handful of rows and ingredient
// lookups are prefix-filtered by the client as the user types.
type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (ch *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := ch.catalogService.ListTags(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (ch *CatalogHandler) GetTag(c *gin.Context) {
	id, apiErr := parseIDParam(c, "id")
	if apiErr != nil {
		RespondError(c, apiErr)
		return
	}
	tag, err := ch.catalogService.GetTag(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (ch *CatalogHandler) ListIngredients(c *gin.Context) {
	ingredients, err := ch.catalogService.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (ch *CatalogHandler) GetIngredient(c *gin.Context) {
	id, apiErr := parseIDParam(c, "id")
	if apiErr != nil {
		RespondError(c, apiErr)
		return
	}
	ingredient, err := ch.catalogService.GetIngredient(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

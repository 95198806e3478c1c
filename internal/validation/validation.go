package validation

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/kitchenlink-backend/internal/apierr"
	"github.com/yungbote/kitchenlink-backend/internal/types"
)

// Stateless field validators shared by every write path. Each returns a
// field-scoped *apierr.Error so handlers can name the offending field.

const (
	RecipeNameMaxLen  = 200
	RecipeTextMaxLen  = 2000
	CookingTimeMin    = 1
	IngredientMinAmt  = 1
	UsernameMaxLen    = 150
	EmailMaxLen       = 254
	ReservedUsername  = "me"
)

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func RecipeName(name string) *apierr.Error {
	if strings.TrimSpace(name) == "" {
		return apierr.Validation("name", "name must not be empty")
	}
	if len([]rune(name)) > RecipeNameMaxLen {
		return apierr.Validation("name", "name must be at most %d characters", RecipeNameMaxLen)
	}
	return nil
}

func RecipeText(text string) *apierr.Error {
	if strings.TrimSpace(text) == "" {
		return apierr.Validation("text", "text must not be empty")
	}
	if len([]rune(text)) > RecipeTextMaxLen {
		return apierr.Validation("text", "text must be at most %d characters", RecipeTextMaxLen)
	}
	return nil
}

func CookingTime(minutes int) *apierr.Error {
	if minutes < CookingTimeMin {
		return apierr.Validation("cooking_time", "cooking_time must be at least %d", CookingTimeMin)
	}
	return nil
}

// TagIDs requires a non-empty, duplicate-free tag set.
func TagIDs(ids []uuid.UUID) *apierr.Error {
	if len(ids) == 0 {
		return apierr.Validation("tags", "tags must not be empty")
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return apierr.Validation("tags", "tags must be unique")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// IngredientLines requires a non-empty set with positive amounts and no
// ingredient repeated within the recipe.
func IngredientLines(lines []types.IngredientAmountInput) *apierr.Error {
	if len(lines) == 0 {
		return apierr.Validation("ingredients", "ingredients must not be empty")
	}
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if line.Amount < IngredientMinAmt {
			return apierr.Validation("ingredients", "ingredient amount must be at least %d", IngredientMinAmt)
		}
		if _, dup := seen[line.ID]; dup {
			return apierr.Validation("ingredients", "ingredients must be unique within a recipe")
		}
		seen[line.ID] = struct{}{}
	}
	return nil
}

func Username(username string) *apierr.Error {
	if username == "" {
		return apierr.Validation("username", "username must not be empty")
	}
	if len([]rune(username)) > UsernameMaxLen {
		return apierr.Validation("username", "username must be at most %d characters", UsernameMaxLen)
	}
	if !usernameRe.MatchString(username) {
		return apierr.Validation("username", "username may only contain letters, digits and . @ + - _")
	}
	if strings.EqualFold(username, ReservedUsername) {
		return apierr.Validation("username", "username %q is reserved", ReservedUsername)
	}
	return nil
}

func Email(email string) *apierr.Error {
	if email == "" {
		return apierr.Validation("email", "email must not be empty")
	}
	if len(email) > EmailMaxLen {
		return apierr.Validation("email", "email must be at most %d characters", EmailMaxLen)
	}
	if !emailRe.MatchString(email) {
		return apierr.Validation("email", "email is not a valid address")
	}
	return nil
}

func TagSlug(slug string) *apierr.Error {
	if slug == "" {
		return apierr.Validation("slug", "slug must not be empty")
	}
	if !slugRe.MatchString(slug) {
		return apierr.Validation("slug", "slug may only contain letters, digits, hyphen and underscore")
	}
	return nil
}

func HexColor(color string) *apierr.Error {
	if !hexColorRe.MatchString(color) {
		return apierr.Validation("color", "color must be a #RRGGBB hex value")
	}
	return nil
}

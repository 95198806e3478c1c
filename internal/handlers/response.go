package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/kitchenlink-backend/internal/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError maps taxonomy errors to their status and envelope; anything
// else is a 500 with a generic message so storage errors never leak.
func RespondError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, ErrorEnvelope{
			Error: APIError{
				Message: apiErr.Error(),
				Code:    apiErr.Code,
				Field:   apiErr.Field,
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorEnvelope{
		Error: APIError{Message: "internal server error", Code: "internal"},
	})
}

// PageEnvelope is the paginated listing shape: total count, absolute
// next/previous page URLs, and the page of results.
type PageEnvelope struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// PageParams is the parsed page-number pagination for one request:
// "limit" overrides the default page size up to the configured maximum.
type PageParams struct {
	Page   int
	Limit  int
	Offset int
}

type PageConfig struct {
	DefaultSize int
	MaxSize     int
}

func ParsePageParams(c *gin.Context, cfg PageConfig) PageParams {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit := cfg.DefaultSize
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > cfg.MaxSize {
		limit = cfg.MaxSize
	}
	return PageParams{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// Paginated builds the envelope, deriving next/previous URLs from the
// request URL with the page query parameter rewritten.
func Paginated(c *gin.Context, count int64, params PageParams, results interface{}) PageEnvelope {
	envelope := PageEnvelope{Count: count, Results: results}
	if int64(params.Offset+params.Limit) < count {
		envelope.Next = pageURL(c, params.Page+1)
	}
	if params.Page > 1 {
		envelope.Previous = pageURL(c, params.Page-1)
	}
	return envelope
}

func pageURL(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

// parseIDParam reads a uuid path parameter; a malformed id behaves like a
// missing resource.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, *apierr.Error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apierr.NotFound("%s not found", name)
	}
	return id, nil
}

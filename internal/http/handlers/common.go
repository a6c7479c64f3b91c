package handlers

import (
	"strconv"
	"strings"

	"dashboard/internal/view"

	"github.com/gin-gonic/gin"
)

// queryInt reads a non-negative integer query param. Missing or malformed
// values fall back to def; negatives clamp to 0.
func queryInt(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < 0 {
		return 0
	}
	return n
}

// queryState builds the table state from ?q=&sort=&order=&page=&pageSize=.
// Bad values never fail the request; Derive normalizes whatever is left.
func (h *Handlers) queryState(c *gin.Context) view.QueryState {
	state := view.DefaultState()
	if h.defaultPageSize > 0 {
		state.PageSize = h.defaultPageSize
	}

	state.Search = c.Query("q")
	if key, ok := c.GetQuery("sort"); ok {
		state.SortKey = strings.ToLower(strings.TrimSpace(key))
	}
	state.Direction = view.ParseDirection(c.Query("order"))
	state.Page = queryInt(c, "page", 0)
	state.PageSize = queryInt(c, "pageSize", state.PageSize)

	return state.Normalized()
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && v
}

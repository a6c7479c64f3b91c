package handlers

import (
	"net/http"
	"strconv"
	"time"

	"dashboard/internal/domain"
	"dashboard/internal/domain/models"
	"dashboard/internal/services"
	"dashboard/internal/view"

	"github.com/gin-gonic/gin"
)

type usersResponse struct {
	Data         []models.User     `json:"data"`
	Pagination   domain.Pagination `json:"pagination"`
	Sort         domain.Sort       `json:"sort"`
	Search       string            `json:"search"`
	Loading      bool              `json:"loading"`
	EmptyMessage string            `json:"emptyMessage,omitempty"`
	FetchedAt    *time.Time        `json:"fetchedAt,omitempty"`
}

// GetUsers returns one page of the users table.
func (h *Handlers) GetUsers(c *gin.Context) {
	page := h.dashboardFor(c).UsersTable(c.Request.Context(), h.queryState(c))
	if page.Err != nil {
		RespondDomainError(c, page.Err)
		return
	}

	resp := usersResponse{
		Data:         page.View.Records,
		Pagination:   domain.NewPagination(page.State.Page, page.State.PageSize, page.View.Total),
		Sort:         domain.Sort{Field: page.State.SortKey, Direction: string(page.State.Direction)},
		Search:       page.State.Search,
		Loading:      page.Loading,
		EmptyMessage: page.EmptyMessage,
	}
	if !page.Loading {
		at := page.FetchedAt
		resp.FetchedAt = &at
	}
	c.JSON(http.StatusOK, resp)
}

// GetUserColumns describes the table columns and the searched fields.
func (h *Handlers) GetUserColumns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"columns":    h.dashboard.Columns(),
		"sortable":   view.Users.SortableFields(),
		"searchable": view.Users.SearchableFields(),
		"default": gin.H{
			"sort":     view.FieldName,
			"order":    view.Asc,
			"pageSize": h.queryState(c).PageSize,
		},
	})
}

func (h *Handlers) GetUserByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "must be a positive integer", Err: err})
		return
	}

	u, err := h.dashboardFor(c).UserByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": u})
}

// ExportUsersPDF renders the current table page, or every match with ?all=true.
func (h *Handlers) ExportUsersPDF(c *gin.Context) {
	svc := services.ExportService{Dashboard: h.dashboardFor(c)}
	pdfBytes, filename, err := svc.ExportUsersPDF(c.Request.Context(), h.queryState(c), queryBool(c, "all"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// RefreshUsers forces a reload from the record source.
func (h *Handlers) RefreshUsers(c *gin.Context) {
	snap, err := h.dashboardFor(c).Refresh(c.Request.Context())
	if err != nil {
		if domain.IsUnavailable(err) {
			respondError(c, http.StatusBadGateway, "source_unavailable", err.Error(), nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "users refreshed",
		"records":   len(snap.Records),
		"fetchedAt": snap.FetchedAt,
	})
}

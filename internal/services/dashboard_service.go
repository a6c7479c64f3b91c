package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"dashboard/internal/domain"
	"dashboard/internal/domain/models"
	"dashboard/internal/metrics"
	"dashboard/internal/source"
	"dashboard/internal/utils"
	"dashboard/internal/view"
)

const (
	emptyLoading  = "Loading users..."
	emptyNoResult = "No users found"
	emptyFailed   = "Users could not be loaded"
)

// SnapshotProvider is the refreshing users collection (see source.Cached).
type SnapshotProvider interface {
	Snapshot(ctx context.Context) source.Snapshot
	Refresh(ctx context.Context) (source.Snapshot, error)
}

// DashboardService builds the stats cards and the users table.
type DashboardService struct {
	Users     SnapshotProvider
	Metrics   *metrics.Metrics
	RequestID string
}

type StatCard struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Value   int    `json:"value"`
	Loading bool   `json:"loading"`
}

type Stats struct {
	Cards     []StatCard `json:"cards"`
	Loading   bool       `json:"loading"`
	FetchedAt *time.Time `json:"fetchedAt,omitempty"`
	// Err is set when no load has succeeded yet.
	Err error `json:"-"`
}

// Column describes one users table column for the front end.
type Column struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
}

// UsersPage is one derivation of the users table plus display hints.
type UsersPage struct {
	View         view.DerivedView[models.User]
	State        view.QueryState
	Loading      bool
	EmptyMessage string
	FetchedAt    time.Time
	// Err is set when no load has succeeded yet; Loading is false then.
	Err error
}

var columnLabels = []struct{ key, label string }{
	{view.FieldName, "Name"},
	{view.FieldEmail, "Email"},
	{view.FieldPhone, "Phone"},
	{view.FieldCompany, "Company"},
}

// Columns lists the table columns in display order.
func (s DashboardService) Columns() []Column {
	out := make([]Column, 0, len(columnLabels))
	for _, c := range columnLabels {
		out = append(out, Column{Key: c.key, Label: c.label, Sortable: view.Users.IsSortable(c.key)})
	}
	return out
}

// Stats derives the summary cards from the collection size. Active users are
// estimated at 60% of the total and orders at three per user.
func (s DashboardService) Stats(ctx context.Context) Stats {
	snap := s.Users.Snapshot(ctx)
	loading := !snap.Ready() && !snap.Failed()

	total := len(snap.Records)
	active := int(math.Round(float64(total) * 0.6))
	orders := total * 3

	out := Stats{
		Loading: loading,
		Cards: []StatCard{
			{Key: "total_users", Title: "Total Users", Value: total, Loading: loading},
			{Key: "active_users", Title: "Active Users", Value: active, Loading: loading},
			{Key: "total_orders", Title: "Total Orders", Value: orders, Loading: loading},
			{Key: "total_items", Title: "Total Items", Value: active, Loading: loading},
		},
	}
	switch {
	case snap.Failed():
		out.Err = snap.Err
	case !loading:
		at := snap.FetchedAt
		out.FetchedAt = &at
	}
	return out
}

// UsersTable derives the requested page of the users table from the current
// snapshot. A pending snapshot yields an empty page flagged as loading.
func (s DashboardService) UsersTable(ctx context.Context, state view.QueryState) UsersPage {
	state = state.Normalized()
	snap := s.Users.Snapshot(ctx)

	start := time.Now()
	derived := view.Derive(view.Users, snap.Records, state)
	s.Metrics.ObserveDerive(sortLabel(state.SortKey), time.Since(start))

	page := UsersPage{
		View:      derived,
		State:     state,
		Loading:   !snap.Ready() && !snap.Failed(),
		FetchedAt: snap.FetchedAt,
	}
	if snap.Failed() {
		page.Err = snap.Err
	}
	if len(derived.Records) == 0 {
		switch {
		case page.Err != nil:
			page.EmptyMessage = emptyFailed
		case page.Loading:
			page.EmptyMessage = emptyLoading
		default:
			page.EmptyMessage = emptyNoResult
		}
	}
	return page
}

// UserByID finds one user in the current snapshot.
func (s DashboardService) UserByID(ctx context.Context, id int64) (models.User, error) {
	snap := s.Users.Snapshot(ctx)
	if snap.Failed() {
		return models.User{}, snap.Err
	}
	if !snap.Ready() {
		return models.User{}, domain.UnavailableError{Source: "users", Err: errors.New("still loading")}
	}
	for _, u := range snap.Records {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user"}
}

// Refresh forces a reload of the users collection.
func (s DashboardService) Refresh(ctx context.Context) (source.Snapshot, error) {
	snap, err := s.Users.Refresh(ctx)
	if err != nil {
		utils.LogError(s.RequestID, "dashboard", "refresh", err)
		return snap, err
	}
	utils.LogEvent(s.RequestID, "dashboard", "refresh", fmt.Sprintf("records=%d", len(snap.Records)))
	return snap, nil
}

// sortLabel keeps the metrics label set closed.
func sortLabel(key string) string {
	if view.Users.IsSortable(key) {
		return key
	}
	return "none"
}

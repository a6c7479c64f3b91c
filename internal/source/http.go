package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dashboard/internal/domain/models"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxBodyBytes       = 8 << 20
)

// HTTPSource reads a JSON array of users from a remote endpoint
// (JSONPlaceholder /users shape).
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTPSource{URL: url, Client: client}
}

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) List(ctx context.Context) ([]models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build users request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("fetch users: unexpected status %d", resp.StatusCode)
	}

	var users []models.User
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/routiq/orggate/pkg/observability"
	"github.com/routiq/orggate/pkg/rbac"
)

// contextPath is the gate endpoint the mirror fetches from
const contextPath = "/api/organization/context"

var (
	// ErrNotSignedIn is returned by FetchContext without a session token
	ErrNotSignedIn = errors.New("no session token")

	// ErrInvalidated is returned when the session changed while the fetch
	// was in flight; the response was discarded, not applied.
	ErrInvalidated = errors.New("session invalidated during fetch")
)

// FetchError is a non-2xx answer from the context endpoint
type FetchError struct {
	Status  int
	Code    string
	Message string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("context fetch failed: %d %s (%s)", e.Status, e.Code, e.Message)
}

// contextPayload is the wire shape of the context endpoint's data field
type contextPayload struct {
	UserID             string   `json:"userId"`
	OrganizationID     string   `json:"organizationId"`
	OrganizationName   string   `json:"organizationName"`
	OrganizationSlug   string   `json:"organizationSlug"`
	UserRole           string   `json:"userRole"`
	UserStatus         string   `json:"userStatus"`
	OrganizationStatus string   `json:"organizationStatus"`
	Permissions        []string `json:"permissions"`
}

// Snapshot is one mirrored organization context
type Snapshot struct {
	UserID             string
	OrganizationID     string
	OrganizationName   string
	OrganizationSlug   string
	Role               rbac.Role
	OrganizationStatus string
	Permissions        []string

	FetchedAt time.Time
}

// Mirror caches the server-resolved context for one signed-in session
type Mirror struct {
	baseURL    string
	httpClient *http.Client
	logger     *observability.Logger
	metrics    *observability.Metrics

	group singleflight.Group

	mu         sync.Mutex
	token      string
	generation uint64
	snapshot   *Snapshot
}

// NewMirror creates a mirror talking to the gate at baseURL. httpClient
// may be nil for a default client with a 10s timeout.
func NewMirror(baseURL string, httpClient *http.Client, logger *observability.Logger, metrics *observability.Metrics) *Mirror {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Mirror{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		metrics:    metrics,
	}
}

// SignIn installs a session token and clears any previous snapshot
func (m *Mirror) SignIn(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.generation++
	m.snapshot = nil
}

// SignOut drops the session and the snapshot
func (m *Mirror) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.generation++
	m.snapshot = nil
}

// SwitchOrganization invalidates the snapshot when the user changes the
// active organization; the token stays.
func (m *Mirror) SwitchOrganization() {
	m.Invalidate()
}

// Invalidate forces the next FetchContext to hit the network. An in-flight
// fetch started before this call will have its response discarded.
func (m *Mirror) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generation++
	m.snapshot = nil
}

// Current returns the cached snapshot, or nil when none is live
func (m *Mirror) Current() *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// FetchContext returns the snapshot for the current session, fetching it
// at most once regardless of how many callers arrive concurrently.
func (m *Mirror) FetchContext(ctx context.Context) (*Snapshot, error) {
	m.mu.Lock()
	if m.snapshot != nil {
		snapshot := m.snapshot
		m.mu.Unlock()
		return snapshot, nil
	}
	token := m.token
	gen := m.generation
	m.mu.Unlock()

	if token == "" {
		return nil, ErrNotSignedIn
	}

	// The generation in the key keeps a post-invalidation fetch from
	// piggybacking on a stale in-flight call.
	key := fmt.Sprintf("context-%d", gen)
	v, err, _ := m.group.Do(key, func() (interface{}, error) {
		return m.fetch(ctx, token, gen)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (m *Mirror) fetch(ctx context.Context, token string, gen uint64) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+contextPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.metrics.ContextFetchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.metrics.ContextFetchesTotal.WithLabelValues("rejected").Inc()
		var envelope struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return nil, &FetchError{Status: resp.StatusCode, Code: envelope.Code, Message: envelope.Error}
	}

	var envelope struct {
		Success bool           `json:"success"`
		Data    contextPayload `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		m.metrics.ContextFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("malformed context response: %w", err)
	}

	snapshot := &Snapshot{
		UserID:             envelope.Data.UserID,
		OrganizationID:     envelope.Data.OrganizationID,
		OrganizationName:   envelope.Data.OrganizationName,
		OrganizationSlug:   envelope.Data.OrganizationSlug,
		Role:               rbac.Role(envelope.Data.UserRole),
		OrganizationStatus: envelope.Data.OrganizationStatus,
		Permissions:        envelope.Data.Permissions,
		FetchedAt:          time.Now().UTC(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != gen {
		m.metrics.ContextFetchesTotal.WithLabelValues("stale").Inc()
		m.logger.Debug("discarding context fetched for an invalidated session")
		return nil, ErrInvalidated
	}
	m.snapshot = snapshot
	m.metrics.ContextFetchesTotal.WithLabelValues("ok").Inc()
	return snapshot, nil
}

package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Provider yields the billing snapshot for an organization
type Provider interface {
	BillingData(ctx context.Context, organizationID string) (*Data, error)
}

// StaticProvider serves snapshots from a JSON fixture file keyed by
// organization ID. It backs development deployments and tests; production
// wires the upstream billing service here.
type StaticProvider struct {
	mu   sync.RWMutex
	data map[string]*Data
}

// NewStaticProvider loads the fixture file
func NewStaticProvider(fixturePath string) (*StaticProvider, error) {
	raw, err := os.ReadFile(fixturePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read billing fixture: %w", err)
	}

	var data map[string]*Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse billing fixture: %w", err)
	}

	return &StaticProvider{data: data}, nil
}

// NewStaticProviderFromData creates a provider from in-memory snapshots
func NewStaticProviderFromData(data map[string]*Data) *StaticProvider {
	if data == nil {
		data = make(map[string]*Data)
	}
	return &StaticProvider{data: data}
}

// BillingData returns the snapshot for the organization. Unknown
// organizations get an empty snapshot, which composes to no alerts.
func (p *StaticProvider) BillingData(ctx context.Context, organizationID string) (*Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if data, ok := p.data[organizationID]; ok {
		copied := *data
		return &copied, nil
	}
	return &Data{OrganizationID: organizationID}, nil
}

// SetData replaces the snapshot for one organization
func (p *StaticProvider) SetData(organizationID string, data *Data) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[organizationID] = data
}

// nopProvider answers every organization with an empty snapshot
type nopProvider struct{}

// NewNopProvider creates a provider for deployments without billing
func NewNopProvider() Provider { return nopProvider{} }

func (nopProvider) BillingData(ctx context.Context, organizationID string) (*Data, error) {
	return &Data{OrganizationID: organizationID}, nil
}

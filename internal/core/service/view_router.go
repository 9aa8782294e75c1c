package service

import (
	"context"
	"sync"

	"github.com/royalestate/realty-platform/internal/core/domain"
	"github.com/royalestate/realty-platform/internal/core/ports"
)

// ViewRouter holds exactly one active section id out of the navigation
// configuration. Switching is synchronous and always permitted — role gating
// happens at the navigation layer, not here. Activating the market section
// triggers a listings fetch only when no fetch has completed yet this session.
type ViewRouter struct {
	mu       sync.Mutex
	active   string
	sections map[string]struct{}
	listings ports.ListingService
}

func NewViewRouter(entries []domain.NavigationEntry, listings ports.ListingService) *ViewRouter {
	sections := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		sections[e.ID] = struct{}{}
	}
	return &ViewRouter{
		active:   domain.SectionDashboard,
		sections: sections,
		listings: listings,
	}
}

// Active returns the current section id.
func (r *ViewRouter) Active() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Activate switches to the given section. Unknown ids are rejected without
// changing the active section.
func (r *ViewRouter) Activate(ctx context.Context, id string) bool {
	r.mu.Lock()
	if _, ok := r.sections[id]; !ok {
		r.mu.Unlock()
		return false
	}
	r.active = id
	r.mu.Unlock()

	if id == domain.SectionMarket && r.listings != nil && !r.listings.FetchedOnce() {
		r.listings.FetchAll(ctx)
	}
	return true
}

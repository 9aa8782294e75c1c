package service

import "github.com/royalestate/realty-platform/internal/core/domain"

// NavigationFor returns the entries visible to the given role, preserving the
// static configuration order. An empty or unknown role yields no entries: no
// navigation is shown before authentication.
func NavigationFor(role domain.Role) []domain.NavigationEntry {
	if !role.IsValid() {
		return []domain.NavigationEntry{}
	}
	entries := make([]domain.NavigationEntry, 0, len(domain.DefaultNavigation))
	for _, e := range domain.DefaultNavigation {
		if e.Allows(role) {
			entries = append(entries, e)
		}
	}
	return entries
}

// NavigationForIdentity is NavigationFor with the pre-authentication case
// folded in: a nil identity sees nothing.
func NavigationForIdentity(identity *domain.Identity) []domain.NavigationEntry {
	if identity == nil {
		return []domain.NavigationEntry{}
	}
	return NavigationFor(identity.Role)
}

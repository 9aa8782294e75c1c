package domain

// Role is the closed set of authority levels gating navigation and listing
// mutation rights.
type Role string

const (
	RoleGuest      Role = "GUEST"
	RoleClient     Role = "CLIENT"
	RoleBroker     Role = "BROKER"
	RoleEmployee   Role = "EMPLOYEE"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// GuestID is the fixed id of the synthetic guest identity.
const GuestID = "guest"

// ParseRole converts a stored role string to a Role. Unknown or empty values
// fall back to RoleBroker, the default for authenticated accounts whose
// profile row is missing or incomplete.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleGuest, RoleClient, RoleBroker, RoleEmployee, RoleSuperAdmin:
		return Role(s)
	default:
		return RoleBroker
	}
}

// IsValid reports whether r is a member of the closed role set.
func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleClient, RoleBroker, RoleEmployee, RoleSuperAdmin:
		return true
	}
	return false
}

// Identity is the authenticated (or guest) actor driving the current session.
// At most one Identity is live per session store instance.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

// GuestIdentity returns the fixed synthetic guest record. No network call is
// involved in assuming it.
func GuestIdentity() *Identity {
	return &Identity{
		ID:          GuestID,
		DisplayName: "زائر كريم",
		Role:        RoleGuest,
	}
}

// IsGuest reports whether the identity is the synthetic guest.
func (i *Identity) IsGuest() bool {
	return i != nil && i.ID == GuestID
}

// CanMutate reports whether the identity may update or delete the listing
// owned by ownerID: owners may, and so may SUPER_ADMIN.
func (i *Identity) CanMutate(ownerID string) bool {
	if i == nil {
		return false
	}
	if i.Role == RoleSuperAdmin {
		return true
	}
	return ownerID != "" && i.ID == ownerID
}

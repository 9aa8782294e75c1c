package domain

// NavigationEntry describes one application section and the roles allowed to
// see it. Entries are static configuration, never persisted.
type NavigationEntry struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Icon         string `json:"icon"`
	AllowedRoles []Role `json:"allowed_roles"`
}

// Allows reports whether the entry is visible to the given role.
func (e NavigationEntry) Allows(role Role) bool {
	for _, r := range e.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// SectionDashboard is the initial active section.
const (
	SectionDashboard = "dashboard"
	SectionMarket    = "market"
	SectionTools     = "tools"
	SectionTeam      = "team"
	SectionFinance   = "finance"
)

// DefaultNavigation is the ordered section configuration. Filtering for a role
// preserves this order.
var DefaultNavigation = []NavigationEntry{
	{ID: SectionDashboard, Label: "لوحة القيادة", Icon: "layout-dashboard", AllowedRoles: []Role{RoleBroker, RoleSuperAdmin}},
	{ID: SectionMarket, Label: "سوق العقارات", Icon: "home", AllowedRoles: []Role{RoleGuest, RoleClient, RoleBroker, RoleSuperAdmin}},
	{ID: SectionTools, Label: "الأدوات الاحترافية", Icon: "briefcase", AllowedRoles: []Role{RoleBroker, RoleSuperAdmin}},
	{ID: SectionTeam, Label: "فريق العمل", Icon: "users", AllowedRoles: []Role{RoleBroker}},
	{ID: SectionFinance, Label: "الخزينة", Icon: "dollar-sign", AllowedRoles: []Role{RoleSuperAdmin}},
}

package entity

// Capability names something a role may do in the client.
type Capability string

const (
	CapBrowsePackages  Capability = "browse_packages"
	CapBookPackages    Capability = "book_packages"
	CapViewOwnBookings Capability = "view_own_bookings"
	CapViewGuideTours  Capability = "view_guide_tours"
	CapManagePackages  Capability = "manage_packages"
	CapManageBookings  Capability = "manage_bookings"
	CapApproveGuides   Capability = "approve_guides"
	CapReadContacts    Capability = "read_contacts"
	CapManageRoles     Capability = "manage_roles"
)

// CapabilitiesFor maps a role to the set of actions it is allowed. It is
// computed fresh for every request.
func CapabilitiesFor(role UserRole) []Capability {
	caps := []Capability{CapBrowsePackages}
	switch role {
	case UserRoleUser, UserRolePremium, UserRoleEmployee:
		caps = append(caps, CapBookPackages, CapViewOwnBookings)
	case UserRoleGuide:
		caps = append(caps, CapViewGuideTours)
	case UserRoleAdmin:
		caps = append(caps, CapBookPackages, CapViewOwnBookings, CapManagePackages, CapManageBookings, CapApproveGuides, CapReadContacts)
	case UserRoleSuperAdmin:
		caps = append(caps, CapBookPackages, CapViewOwnBookings, CapManagePackages, CapManageBookings, CapApproveGuides, CapReadContacts, CapManageRoles)
	}
	return caps
}

// HasCapability reports whether role grants c.
func HasCapability(role UserRole, c Capability) bool {
	for _, got := range CapabilitiesFor(role) {
		if got == c {
			return true
		}
	}
	return false
}

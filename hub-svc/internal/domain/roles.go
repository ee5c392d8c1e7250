package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleKitchen  Role = "kitchen"
	RoleDelivery Role = "delivery"
)

// Allows reports whether r satisfies any of the listed roles. Admin
// satisfies everything.
func (r Role) Allows(roles ...Role) bool {
	if r == RoleAdmin {
		return true
	}
	for _, want := range roles {
		if r == want {
			return true
		}
	}
	return false
}

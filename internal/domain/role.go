package domain

// Role enumerates operator roles carried in identity tokens.
type Role string

const (
	RoleNSM        Role = "nsm"
	RoleAccounting Role = "accounting"
	RoleSales      Role = "sales"
	RoleInventory  Role = "inventory"
	RoleService    Role = "service"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleNSM, RoleAccounting, RoleSales, RoleInventory, RoleService:
		return true
	}
	return false
}

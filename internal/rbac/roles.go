package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleOwner           = "owner"   // workspace owner
	RoleManager         = "manager" // collections manager, runs campaigns
	RoleAgent           = "agent"   // desk agent, monitors calls and contacts
	RoleAnalyst         = "analyst" // read-only reporting access
	RoleFinance         = "finance" // credit top-ups and billing
	RoleSuperAdmin      = "super_admin"
	RoleSupportOperator = "support_operator" // hidden role
)

func IsSuperAdmin(role string) bool { return role == RoleSuperAdmin }

func IsHiddenRole(role string) bool { return role == RoleSupportOperator }

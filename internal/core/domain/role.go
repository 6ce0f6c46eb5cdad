package domain

import "strings"

// Role is a reference entity; its display name drives scope classification.
type Role struct {
	RoleID      string `json:"roleID"` // Primary Key (e.g., UUID)
	Name        string `json:"name"`
	IsDefault   bool   `json:"isDefault"`   // Assigned to OAuth-provisioned users
	IsProtected bool   `json:"isProtected"` // System roles that cannot be removed
	AuditFields
}

// IsCorporateRoleName reports whether a role display name confers
// organization-wide scope. The match is a deliberately loose, case-insensitive
// substring check against "owner" and "corporate" ("Co-Owner" and
// "corporate-admin" both classify as corporate). Product has flagged replacing
// this heuristic with an explicit permission on the role entity; until that
// decision lands the matching semantics must not be tightened.
func IsCorporateRoleName(roleName string) bool {
	if roleName == "" {
		return false
	}
	name := strings.ToLower(roleName)
	return name == "owner" ||
		name == "corporate" ||
		strings.Contains(name, "owner") ||
		strings.Contains(name, "corporate")
}

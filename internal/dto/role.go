package dto

import (
	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
)

// RoleResponse defines the data returned for a role.
type RoleResponse struct {
	RoleID      string `json:"roleID"`
	Name        string `json:"name"`
	IsDefault   bool   `json:"isDefault"`
	IsProtected bool   `json:"isProtected"`
	IsCorporate bool   `json:"isCorporate"`
}

// ToRoleResponse converts a domain.Role to RoleResponse DTO
func ToRoleResponse(role *domain.Role) RoleResponse {
	return RoleResponse{
		RoleID:      role.RoleID,
		Name:        role.Name,
		IsDefault:   role.IsDefault,
		IsProtected: role.IsProtected,
		IsCorporate: domain.IsCorporateRoleName(role.Name),
	}
}

// ListRolesResponse wraps the list of roles.
type ListRolesResponse struct {
	Roles []RoleResponse `json:"roles"`
}

// ToListRolesResponse converts a slice of domain.Role to DTO.
func ToListRolesResponse(roles []domain.Role) ListRolesResponse {
	list := make([]RoleResponse, len(roles))
	for i, r := range roles {
		list[i] = ToRoleResponse(&r)
	}
	return ListRolesResponse{Roles: list}
}

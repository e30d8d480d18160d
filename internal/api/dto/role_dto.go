package dto

import (
	"github.com/spec-kit/weight-tracker/internal/domain"
)

// RoleRequest is the payload for creating or updating a role.
type RoleRequest struct {
	RoleType string `json:"role_type"`
}

// RoleResponse is the wire shape for a role.
type RoleResponse struct {
	ID       int64  `json:"id"`
	RoleType string `json:"role_type"`
}

// NewRoleResponse maps a role to the wire shape.
func NewRoleResponse(role *domain.Role) RoleResponse {
	return RoleResponse{ID: role.ID, RoleType: string(role.RoleType)}
}

// NewRoleResponses maps a list of roles.
func NewRoleResponses(roles []*domain.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, NewRoleResponse(role))
	}
	return out
}

package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/weight-tracker/internal/api/dto"
	"github.com/spec-kit/weight-tracker/internal/domain"
	"github.com/spec-kit/weight-tracker/internal/service"
	apperrors "github.com/spec-kit/weight-tracker/pkg/util"
)

// RolesHandler exposes role management endpoints. The whole group is
// gated to admins at the router.
type RolesHandler struct {
	roles *service.RoleService
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roleService *service.RoleService) *RolesHandler {
	return &RolesHandler{roles: roleService}
}

// List handles GET /roles/.
func (h *RolesHandler) List(c *fiber.Ctx) error {
	roles, err := h.roles.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRoleResponses(roles))
}

// Get handles GET /roles/:roleID.
func (h *RolesHandler) Get(c *fiber.Ctx) error {
	roleID, err := parseID(c, "roleID")
	if err != nil {
		return err
	}
	role, err := h.roles.GetByID(c.Context(), roleID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRoleResponse(role))
}

// GetByName handles GET /roles/name/:roleType.
func (h *RolesHandler) GetByName(c *fiber.Ctx) error {
	role, err := h.roles.GetByType(c.Context(), domain.RoleType(c.Params("roleType")))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRoleResponse(role))
}

// Create handles POST /roles/.
func (h *RolesHandler) Create(c *fiber.Ctx) error {
	var req dto.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	role, err := h.roles.Create(c.Context(), domain.RoleType(req.RoleType))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRoleResponse(role))
}

// Update handles PATCH /roles/:roleID.
func (h *RolesHandler) Update(c *fiber.Ctx) error {
	roleID, err := parseID(c, "roleID")
	if err != nil {
		return err
	}
	var req dto.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	role, err := h.roles.Update(c.Context(), roleID, domain.RoleType(req.RoleType))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRoleResponse(role))
}

// Delete handles DELETE /roles/:roleID.
func (h *RolesHandler) Delete(c *fiber.Ctx) error {
	roleID, err := parseID(c, "roleID")
	if err != nil {
		return err
	}
	role, err := h.roles.Delete(c.Context(), roleID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Role type %s with id %d deleted", role.RoleType, roleID)})
}

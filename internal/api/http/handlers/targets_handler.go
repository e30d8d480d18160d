package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/weight-tracker/internal/api/dto"
	"github.com/spec-kit/weight-tracker/internal/auth"
	"github.com/spec-kit/weight-tracker/internal/service"
	apperrors "github.com/spec-kit/weight-tracker/pkg/util"
)

// TargetsHandler exposes weight-target endpoints.
type TargetsHandler struct {
	targets *service.TargetService
}

// NewTargetsHandler constructs handler.
func NewTargetsHandler(targetService *service.TargetService) *TargetsHandler {
	return &TargetsHandler{targets: targetService}
}

// ListPublic handles GET /users/targets.
func (h *TargetsHandler) ListPublic(c *fiber.Ctx) error {
	targets, err := h.targets.ListPublic(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTargetResponses(targets))
}

// GetByName handles GET /users/targets/name/:targetName.
func (h *TargetsHandler) GetByName(c *fiber.Ctx) error {
	target, err := h.targets.GetByName(c.Context(), c.Params("targetName"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTargetResponse(target))
}

// MyTargets handles GET /users/me/targets.
func (h *TargetsHandler) MyTargets(c *fiber.Ctx) error {
	principal, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNotAuthenticated)
	}
	targets, err := h.targets.ListByUser(c.Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTargetResponses(targets))
}

// ListForUser handles GET /users/:userID/targets.
func (h *TargetsHandler) ListForUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "userID")
	if err != nil {
		return err
	}
	targets, err := h.targets.ListByUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTargetResponses(targets))
}

// Create handles POST /users/:userID/targets. Only the path-declared
// owner (or an admin) may create targets under a user.
func (h *TargetsHandler) Create(c *fiber.Ctx) error {
	userID, err := parseID(c, "userID")
	if err != nil {
		return err
	}
	principal, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNotAuthenticated)
	}
	if err := auth.AuthorizeSelfOrAdmin(principal, userID); err != nil {
		return err
	}

	var req dto.TargetCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Name == "" {
		return apperrors.NewBadRequest("name required")
	}
	startDate, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return err
	}
	endDate, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return err
	}

	public := true
	if req.Public != nil {
		public = *req.Public
	}

	target, err := h.targets.Create(c.Context(), userID, service.TargetCreateInput{
		Name:         req.Name,
		TargetWeight: req.TargetWeight,
		StartDate:    startDate,
		EndDate:      endDate,
		Public:       public,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTargetResponse(target))
}

// Update handles PATCH /users/:userID/targets/:targetID. The target is
// resolved against its path-declared owner before authorization.
func (h *TargetsHandler) Update(c *fiber.Ctx) error {
	userID, err := parseID(c, "userID")
	if err != nil {
		return err
	}
	targetID, err := parseID(c, "targetID")
	if err != nil {
		return err
	}

	target, err := h.targets.GetForUser(c.Context(), targetID, userID)
	if err != nil {
		return err
	}

	principal, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNotAuthenticated)
	}
	if err := auth.AuthorizeSelfOrAdmin(principal, userID); err != nil {
		return err
	}

	var req dto.TargetUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	input := service.TargetUpdateInput{
		Name:         req.Name,
		TargetWeight: req.TargetWeight,
		Public:       req.Public,
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate, "start_date")
		if err != nil {
			return err
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate, "end_date")
		if err != nil {
			return err
		}
		input.EndDate = &endDate
	}

	updated, err := h.targets.Update(c.Context(), target, principal.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTargetResponse(updated))
}

// Delete handles DELETE /users/:userID/targets/:targetID.
func (h *TargetsHandler) Delete(c *fiber.Ctx) error {
	userID, err := parseID(c, "userID")
	if err != nil {
		return err
	}
	targetID, err := parseID(c, "targetID")
	if err != nil {
		return err
	}

	target, err := h.targets.GetForUser(c.Context(), targetID, userID)
	if err != nil {
		return err
	}

	principal, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNotAuthenticated)
	}
	if err := auth.AuthorizeSelfOrAdmin(principal, userID); err != nil {
		return err
	}

	if err := h.targets.Delete(c.Context(), target); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Target with id %d deleted successfully", targetID)})
}

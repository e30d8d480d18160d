package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/weight-tracker/internal/api/dto"
	"github.com/spec-kit/weight-tracker/internal/auth"
	"github.com/spec-kit/weight-tracker/internal/domain"
	"github.com/spec-kit/weight-tracker/internal/service"
	apperrors "github.com/spec-kit/weight-tracker/pkg/util"
)

// MeasurementsHandler exposes weigh-in endpoints nested under a
// user's target.
type MeasurementsHandler struct {
	measurements *service.MeasurementService
}

// NewMeasurementsHandler constructs handler.
func NewMeasurementsHandler(measurementService *service.MeasurementService) *MeasurementsHandler {
	return &MeasurementsHandler{measurements: measurementService}
}

func measurementScope(c *fiber.Ctx) (userID, targetID int64, principal *domain.User, err error) {
	userID, err = parseID(c, "userID")
	if err != nil {
		return 0, 0, nil, err
	}
	targetID, err = parseID(c, "targetID")
	if err != nil {
		return 0, 0, nil, err
	}
	principal, ok := auth.CurrentUser(c)
	if !ok {
		return 0, 0, nil, apperrors.NewUnauthorized(auth.MsgNotAuthenticated)
	}
	return userID, targetID, principal, nil
}

// List handles GET .../measurements. Weigh-ins are private to the
// owner and admins.
func (h *MeasurementsHandler) List(c *fiber.Ctx) error {
	userID, targetID, principal, err := measurementScope(c)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeSelfOrAdmin(principal, userID); err != nil {
		return err
	}

	measurements, err := h.measurements.ListForTarget(c.Context(), targetID, userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMeasurementResponses(measurements))
}

// Get handles GET .../measurements/:measurementID.
func (h *MeasurementsHandler) Get(c *fiber.Ctx) error {
	userID, targetID, principal, err := measurementScope(c)
	if err != nil {
		return err
	}
	measurementID, err := parseID(c, "measurementID")
	if err != nil {
		return err
	}

	m, err := h.measurements.GetScoped(c.Context(), measurementID, targetID, userID)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeSelfOrAdmin(principal, userID); err != nil {
		return err
	}
	return c.JSON(dto.NewMeasurementResponse(m))
}

// Create handles POST .../measurements.
func (h *MeasurementsHandler) Create(c *fiber.Ctx) error {
	userID, targetID, principal, err := measurementScope(c)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeSelfOrAdmin(principal, userID); err != nil {
		return err
	}

	var req dto.MeasurementCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	measurementDate, err := parseDate(req.MeasurementDate, "measurement_date")
	if err != nil {
		return err
	}

	m, err := h.measurements.Create(c.Context(), targetID, userID, principal.ID, service.MeasurementCreateInput{
		Weight:          req.Weight,
		MeasurementDate: measurementDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMeasurementResponse(m))
}

// Update handles PATCH .../measurements/:measurementID.
func (h *MeasurementsHandler) Update(c *fiber.Ctx) error {
	userID, targetID, principal, err := measurementScope(c)
	if err != nil {
		return err
	}
	measurementID, err := parseID(c, "measurementID")
	if err != nil {
		return err
	}

	m, err := h.measurements.GetScoped(c.Context(), measurementID, targetID, userID)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeSelfOrAdmin(principal, userID); err != nil {
		return err
	}

	var req dto.MeasurementUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	input := service.MeasurementUpdateInput{Weight: req.Weight}
	if req.MeasurementDate != nil {
		measurementDate, err := parseDate(*req.MeasurementDate, "measurement_date")
		if err != nil {
			return err
		}
		input.MeasurementDate = &measurementDate
	}

	updated, err := h.measurements.Update(c.Context(), m, principal.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMeasurementResponse(updated))
}

// Delete handles DELETE .../measurements/:measurementID.
func (h *MeasurementsHandler) Delete(c *fiber.Ctx) error {
	userID, targetID, principal, err := measurementScope(c)
	if err != nil {
		return err
	}
	measurementID, err := parseID(c, "measurementID")
	if err != nil {
		return err
	}

	m, err := h.measurements.GetScoped(c.Context(), measurementID, targetID, userID)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeSelfOrAdmin(principal, userID); err != nil {
		return err
	}

	if err := h.measurements.Delete(c.Context(), m, principal.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Measurement with id %d deleted successfully", measurementID)})
}

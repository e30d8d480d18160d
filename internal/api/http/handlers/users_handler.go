package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/weight-tracker/internal/api/dto"
	"github.com/spec-kit/weight-tracker/internal/auth"
	"github.com/spec-kit/weight-tracker/internal/service"
	apperrors "github.com/spec-kit/weight-tracker/pkg/util"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /users/.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users))
}

// Me handles GET /users/me for the authenticated principal.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNotAuthenticated)
	}
	user, targets, err := h.users.GetByID(c.Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user, targets))
}

// Get handles GET /users/:userID.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	userID, err := parseID(c, "userID")
	if err != nil {
		return err
	}
	user, targets, err := h.users.GetByID(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user, targets))
}

// GetByUsername handles GET /users/name/:username.
func (h *UsersHandler) GetByUsername(c *fiber.Ctx) error {
	user, targets, err := h.users.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user, targets))
}

// Create handles POST /users. Registration is open; the role is server
// assigned.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewBadRequest("username, email and password required")
	}

	user, err := h.users.Register(c.Context(), service.UserCreateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Height:   req.Height,
		Weight:   req.Weight,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user, nil))
}

// Update handles PATCH /users/:userID. The user is looked up before
// authorization so an unknown id is a 404 for everyone.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	userID, err := parseID(c, "userID")
	if err != nil {
		return err
	}
	if _, _, err := h.users.GetByID(c.Context(), userID); err != nil {
		return err
	}

	principal, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNotAuthenticated)
	}
	if err := auth.AuthorizeSelfOrAdmin(principal, userID); err != nil {
		return err
	}

	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	user, err := h.users.Update(c.Context(), userID, service.UserUpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Height:   req.Height,
		Weight:   req.Weight,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user, nil))
}

// Delete handles DELETE /users/:userID.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	userID, err := parseID(c, "userID")
	if err != nil {
		return err
	}
	if _, _, err := h.users.GetByID(c.Context(), userID); err != nil {
		return err
	}

	principal, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNotAuthenticated)
	}
	if err := auth.AuthorizeSelfOrAdmin(principal, userID); err != nil {
		return err
	}

	if err := h.users.Delete(c.Context(), userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("User with id %d deleted successfully", userID)})
}

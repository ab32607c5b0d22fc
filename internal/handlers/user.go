package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/techieblitz/assignment-tracker/internal/services"
	"github.com/techieblitz/assignment-tracker/internal/utils"
)

// UserHandler handles user routes
type UserHandler struct {
	Users *services.UserService
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type userUpdateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register handles POST /api/users/register
// @Summary Register a user
// @Description Create the profile record for the verified identity
// @Tags Users
// @Accept json
// @Produce json
// @Param body body registerRequest true "Profile data"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /users/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "users.register")
	}

	var body registerRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.register")
	}
	if body.Email == "" {
		body.Email = identity.Email
	}
	if body.Username == "" || body.Email == "" {
		return utils.ErrorResponse(c, "username and email are required", fiber.StatusBadRequest, "users.register")
	}

	user, err := h.Users.Register(c.Context(), identity.UserID, body.Username, body.Email)
	if err != nil {
		return respondError(c, err, "users.register")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Get handles GET /api/users/:id
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.Users.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "users.get")
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// Update handles PUT /api/users/:id
// @Summary Update a user's profile
// @Tags Users
// @Accept json
// @Param id path string true "User ID"
// @Param body body userUpdateRequest true "Fields to update"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var body userUpdateRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.update")
	}

	if err := h.Users.Update(c.Context(), c.Params("id"), body.Username, body.Email); err != nil {
		return respondError(c, err, "users.update")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete handles DELETE /api/users/:id
// @Summary Delete a user
// @Tags Users
// @Param id path string true "User ID"
// @Success 204
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.Users.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err, "users.delete")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/techieblitz/assignment-tracker/internal/services"
	"github.com/techieblitz/assignment-tracker/internal/utils"
)

// AssignmentHandler handles assignment routes
type AssignmentHandler struct {
	Assignments *services.AssignmentService
}

type moveRequest struct {
	Status string `json:"status"`
}

// Create handles POST /api/assignments/create
// @Summary Create an assignment
// @Description Create an assignment and its Trello card, provisioning the user's board on first use
// @Tags Assignments
// @Accept json
// @Produce json
// @Param body body services.AssignmentInput true "Assignment data"
// @Success 201 {object} models.Assignment
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /assignments/create [post]
func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "assignments.create")
	}

	var body services.AssignmentInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "assignments.create")
	}
	if body.Name == "" {
		return utils.ErrorResponse(c, "name is required", fiber.StatusBadRequest, "assignments.create")
	}

	assignment, err := h.Assignments.Create(c.Context(), identity.UserID, body)
	if err != nil {
		return respondError(c, err, "assignments.create")
	}
	return c.Status(fiber.StatusCreated).JSON(assignment)
}

// Get handles GET /api/assignments/:assignmentId
// @Summary Get an assignment
// @Tags Assignments
// @Produce json
// @Param assignmentId path string true "Assignment ID"
// @Success 200 {object} services.AssignmentView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /assignments/{assignmentId} [get]
func (h *AssignmentHandler) Get(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "assignments.get")
	}

	view, err := h.Assignments.Get(c.Context(), identity.UserID, c.Params("assignmentId"))
	if err != nil {
		return respondError(c, err, "assignments.get")
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// List handles GET /api/assignments
// @Summary List the user's assignments
// @Tags Assignments
// @Produce json
// @Success 200 {array} services.AssignmentView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "assignments.list")
	}

	views, err := h.Assignments.List(c.Context(), identity.UserID)
	if err != nil {
		return respondError(c, err, "assignments.list")
	}
	return c.Status(fiber.StatusOK).JSON(views)
}

// ListByCategory handles GET /api/assignments/category/:categoryId
// @Summary List assignments in a category
// @Tags Assignments
// @Produce json
// @Param categoryId path string true "Category ID"
// @Success 200 {array} services.AssignmentView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /assignments/category/{categoryId} [get]
func (h *AssignmentHandler) ListByCategory(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "assignments.listByCategory")
	}

	views, err := h.Assignments.ListByCategory(c.Context(), identity.UserID, c.Params("categoryId"))
	if err != nil {
		return respondError(c, err, "assignments.listByCategory")
	}
	return c.Status(fiber.StatusOK).JSON(views)
}

// Update handles PUT /api/assignments/:assignmentId
// @Summary Update an assignment
// @Description Update the Trello card first, then the local record
// @Tags Assignments
// @Accept json
// @Param assignmentId path string true "Assignment ID"
// @Param body body services.AssignmentInput true "Fields to update"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /assignments/{assignmentId} [put]
func (h *AssignmentHandler) Update(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "assignments.update")
	}

	var body services.AssignmentInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "assignments.update")
	}

	if err := h.Assignments.Update(c.Context(), identity.UserID, c.Params("assignmentId"), body); err != nil {
		return respondError(c, err, "assignments.update")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Move handles PUT /api/assignments/:assignmentId/move
// @Summary Move an assignment between lists
// @Description Move the Trello card to the list matching the new status
// @Tags Assignments
// @Accept json
// @Param assignmentId path string true "Assignment ID"
// @Param body body moveRequest true "New status: todo, in-progress or completed"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /assignments/{assignmentId}/move [put]
func (h *AssignmentHandler) Move(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "assignments.move")
	}

	var body moveRequest
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return utils.ErrorResponse(c, "status is required", fiber.StatusBadRequest, "assignments.move")
	}

	if err := h.Assignments.Move(c.Context(), identity.UserID, c.Params("assignmentId"), body.Status); err != nil {
		return respondError(c, err, "assignments.move")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete handles DELETE /api/assignments/:assignmentId
// @Summary Delete an assignment
// @Description Delete the local record first, then the Trello card
// @Tags Assignments
// @Param assignmentId path string true "Assignment ID"
// @Success 204
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /assignments/{assignmentId} [delete]
func (h *AssignmentHandler) Delete(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "assignments.delete")
	}

	if err := h.Assignments.Delete(c.Context(), identity.UserID, c.Params("assignmentId")); err != nil {
		return respondError(c, err, "assignments.delete")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

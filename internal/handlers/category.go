package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/techieblitz/assignment-tracker/internal/services"
	"github.com/techieblitz/assignment-tracker/internal/utils"
)

// CategoryHandler handles category routes
type CategoryHandler struct {
	Categories *services.CategoryService
}

type categoryRequest struct {
	Name string `json:"name"`
}

// Create handles POST /api/categories/create
// @Summary Create a category
// @Description Create a category and its Trello label on the user's board
// @Tags Categories
// @Accept json
// @Produce json
// @Param body body categoryRequest true "Category data"
// @Success 201 {object} models.Category
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /categories/create [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "categories.create")
	}

	var body categoryRequest
	if err := c.BodyParser(&body); err != nil || body.Name == "" {
		return utils.ErrorResponse(c, "name is required", fiber.StatusBadRequest, "categories.create")
	}

	category, err := h.Categories.Create(c.Context(), identity.UserID, body.Name)
	if err != nil {
		return respondError(c, err, "categories.create")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// List handles GET /api/categories
// @Summary List the user's categories
// @Tags Categories
// @Produce json
// @Success 200 {array} models.Category
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "categories.list")
	}

	categories, err := h.Categories.List(c.Context(), identity.UserID)
	if err != nil {
		return respondError(c, err, "categories.list")
	}
	return c.Status(fiber.StatusOK).JSON(categories)
}

// Get handles GET /api/categories/:categoryId
// @Summary Get a category
// @Tags Categories
// @Produce json
// @Param categoryId path string true "Category ID"
// @Success 200 {object} models.Category
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /categories/{categoryId} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "categories.get")
	}

	category, err := h.Categories.Get(c.Context(), identity.UserID, c.Params("categoryId"))
	if err != nil {
		return respondError(c, err, "categories.get")
	}
	return c.Status(fiber.StatusOK).JSON(category)
}

// Update handles PUT /api/categories/:categoryId
// @Summary Rename a category
// @Description Rename the category and its Trello label
// @Tags Categories
// @Accept json
// @Param categoryId path string true "Category ID"
// @Param body body categoryRequest true "New name"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /categories/{categoryId} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "categories.update")
	}

	var body categoryRequest
	if err := c.BodyParser(&body); err != nil || body.Name == "" {
		return utils.ErrorResponse(c, "name is required", fiber.StatusBadRequest, "categories.update")
	}

	if err := h.Categories.Rename(c.Context(), identity.UserID, c.Params("categoryId"), body.Name); err != nil {
		return respondError(c, err, "categories.update")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete handles DELETE /api/categories/:categoryId
// @Summary Delete a category
// @Description Delete the category record, then its Trello label
// @Tags Categories
// @Param categoryId path string true "Category ID"
// @Success 204
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /categories/{categoryId} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "categories.delete")
	}

	if err := h.Categories.Delete(c.Context(), identity.UserID, c.Params("categoryId")); err != nil {
		return respondError(c, err, "categories.delete")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

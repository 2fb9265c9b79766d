package server

import (
	"agora/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCategories returns every category with its thread count.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryService.ListCategories(c.UserContext())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(categories)
}

// GetCategory returns one category by id.
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.categoryService.GetCategory(c.UserContext(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(category)
}

// CreateCategory creates a category. Duplicate names are a conflict.
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req models.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.CreateCategory(c.UserContext(), &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory applies a partial update to a category.
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var patch models.CategoryPatch
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.UpdateCategory(c.UserContext(), id, &patch)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory removes a category and everything under it.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.categoryService.DeleteCategory(c.UserContext(), id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// GetCategoryThreads returns one page of a category's threads.
func (s *Server) GetCategoryThreads(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c)
	page, err := s.threadService.ListThreads(c.UserContext(), id, c.Query("sort"), p.Page, p.PageSize)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(page)
}

package server

import (
	"agora/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetThreads returns one page of threads across all categories. Pinned
// threads sort first; sort accepts created_at, updated_at or post_count.
func (s *Server) GetThreads(c *fiber.Ctx) error {
	p := parsePagination(c)
	page, err := s.threadService.ListThreads(c.UserContext(), 0, c.Query("sort"), p.Page, p.PageSize)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(page)
}

// GetThread returns one thread with its tags, post count and category name.
func (s *Server) GetThread(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	thread, err := s.threadService.GetThread(c.UserContext(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(thread)
}

// CreateThread creates a thread together with its first post and tags.
func (s *Server) CreateThread(c *fiber.Ctx) error {
	var req models.CreateThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	thread, err := s.threadService.CreateThread(c.UserContext(), &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(thread)
}

// UpdateThread applies a partial update (title, pinned, locked).
func (s *Server) UpdateThread(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var patch models.ThreadPatch
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	thread, err := s.threadService.UpdateThread(c.UserContext(), id, &patch)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(thread)
}

// DeleteThread removes a thread and its posts.
func (s *Server) DeleteThread(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.threadService.DeleteThread(c.UserContext(), id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Thread deleted"})
}

// GetThreadPosts returns one page of a thread's posts in chronological order.
func (s *Server) GetThreadPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c)
	page, err := s.postService.ListPosts(c.UserContext(), id, p.Page, p.PageSize)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(page)
}

// AddThreadTags attaches tags to a thread and returns the full tag list.
func (s *Server) AddThreadTags(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req models.AddTagsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tags, err := s.threadService.AddTags(c.UserContext(), id, &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"thread_id": id, "tags": tags})
}

// RemoveThreadTag detaches one tag from a thread.
func (s *Server) RemoveThreadTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	name := c.Params("name")

	if err := s.threadService.RemoveTag(c.UserContext(), id, name); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tag removed"})
}

// GetTags returns every tag in use with its thread count.
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.threadService.ListTags(c.UserContext())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(tags)
}

// GetTagThreads returns one page of the threads carrying a tag, newest first.
func (s *Server) GetTagThreads(c *fiber.Ctx) error {
	p := parsePagination(c)
	page, err := s.threadService.ListThreadsByTag(c.UserContext(), c.Params("name"), p.Page, p.PageSize)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(page)
}

package server

import (
	"agora/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPost returns one post with its vote tallies.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(post)
}

// CreatePost appends a reply to a thread. Replying to a locked thread is
// forbidden.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req models.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost replaces a post's content.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req models.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), id, &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(post)
}

// DeletePost removes a post and its reactions.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// GetPostReactions lists the reactions on a post.
func (s *Server) GetPostReactions(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reactions, err := s.postService.ListReactions(c.UserContext(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(reactions)
}

// CreateReaction records a vote on a post. A repeat vote of the same kind by
// the same reactor is a conflict.
func (s *Server) CreateReaction(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req models.CreateReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reaction, err := s.postService.AddReaction(c.UserContext(), id, &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reaction)
}

// DeleteReaction removes one reactor's vote of the given kind from a post.
// The reactor comes in as a query parameter since the API has no sessions.
func (s *Server) DeleteReaction(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reactor := c.Query("reactor_name")
	if reactor == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("reactor_name is required"))
	}

	kind := models.ReactionKind(c.Params("kind"))
	if err := s.postService.DeleteReaction(c.UserContext(), id, kind, reactor); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Reaction deleted"})
}

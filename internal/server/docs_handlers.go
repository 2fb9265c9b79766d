package server

import (
	"fmt"
	"strings"

	"agora/internal/ghdocs"
	"agora/internal/models"

	"github.com/gofiber/fiber/v2"
)

// requireDocsToken extracts the caller's GitHub token. The proxy is
// stateless: every request must carry its own token.
func (s *Server) requireDocsToken(c *fiber.Ctx) (string, error) {
	token := bearerToken(c)
	if token == "" {
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewForbiddenError("Missing or invalid Authorization header. Send: Authorization: Bearer <github_token>"))
		return "", errResponseWritten
	}
	return token, nil
}

// GetDocsManifest returns manifest.json from the docs repo root.
func (s *Server) GetDocsManifest(c *fiber.Ctx) error {
	token, err := s.requireDocsToken(c)
	if err != nil {
		return nil
	}

	manifest, err := s.docs.GetManifest(c.UserContext(), token)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}
	if manifest == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Manifest", "manifest.json"))
	}
	return c.JSON(manifest)
}

// ListDocServices lists the service directories and their documents. The
// manifest is preferred; without one the repo root is walked.
func (s *Server) ListDocServices(c *fiber.Ctx) error {
	token, err := s.requireDocsToken(c)
	if err != nil {
		return nil
	}
	ctx := c.UserContext()

	manifest, err := s.docs.GetManifest(ctx, token)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}
	if manifest != nil {
		return c.JSON(manifest)
	}

	entries, err := s.docs.ListDir(ctx, "", token)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}

	type serviceDocs struct {
		Name string   `json:"name"`
		Docs []string `json:"docs"`
	}
	services := []serviceDocs{}
	for _, e := range entries {
		if e.Type != "dir" {
			continue
		}
		files, err := s.docs.ListDir(ctx, e.Path, token)
		if err != nil {
			return respondErr(c, models.NewInternalError(err))
		}
		docs := []string{}
		for _, f := range files {
			if f.Type == "file" && strings.HasSuffix(f.Name, ".md") {
				docs = append(docs, f.Name)
			}
		}
		services = append(services, serviceDocs{Name: e.Name, Docs: docs})
	}
	return c.JSON(fiber.Map{"services": services})
}

// GetServiceDocs returns every markdown document under one service directory.
func (s *Server) GetServiceDocs(c *fiber.Ctx) error {
	token, err := s.requireDocsToken(c)
	if err != nil {
		return nil
	}
	service := c.Params("service")

	files, err := s.docs.GetDirFiles(c.UserContext(), service, token)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}
	if len(files) == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Docs", service))
	}
	return c.JSON(fiber.Map{"service": service, "docs": files})
}

// GetDoc returns one document by service directory and filename.
func (s *Server) GetDoc(c *fiber.Ctx) error {
	token, err := s.requireDocsToken(c)
	if err != nil {
		return nil
	}
	path := fmt.Sprintf("%s/%s", c.Params("service"), c.Params("filename"))

	content, found, err := s.docs.GetFile(c.UserContext(), path, token)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Document", path))
	}
	return c.JSON(ghdocs.File{Path: path, Content: content})
}

// SearchDocs searches the docs repo via GitHub code search.
func (s *Server) SearchDocs(c *fiber.Ctx) error {
	token, err := s.requireDocsToken(c)
	if err != nil {
		return nil
	}
	query := c.Query("q")
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	hits, err := s.docs.SearchDocs(c.UserContext(), query, token)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"query": query, "results": hits})
}

// VerifyDocsToken checks that the caller's token can read the docs repo.
func (s *Server) VerifyDocsToken(c *fiber.Ctx) error {
	token, err := s.requireDocsToken(c)
	if err != nil {
		return nil
	}

	ok, err := s.docs.VerifyToken(c.UserContext(), token)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{
		"valid":  ok,
		"repo":   s.docs.Repo(),
		"branch": s.docs.Branch(),
	})
}

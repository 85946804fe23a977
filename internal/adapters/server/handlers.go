package server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/labstack/echo/v4"
)

type postJSON struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

type postsJSON struct {
	Posts []postJSON `json:"posts"`
}

type errorJSON struct {
	Error string `json:"error"`
}

func toJSON(posts []domain.Post) []postJSON {
	out := make([]postJSON, 0, len(posts))
	for _, post := range posts {
		out = append(out, postJSON{Username: post.Username, Content: post.Content})
	}
	return out
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *Server) handleIndex(c echo.Context) error {
	page := &boardPage{}
	if _, err := s.board.LoadPosts(c.Request().Context(), page); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load posts").SetInternal(err)
	}

	return s.renderPage(c, http.StatusOK, page)
}

// handleFormPost mirrors the in-page form: a rejected submission re-renders the board
// with the alert and the typed values kept.
func (s *Server) handleFormPost(c echo.Context) error {
	ctx := c.Request().Context()
	username := c.FormValue("username")
	content := c.FormValue("post-content")

	page := &boardPage{Username: username, Content: content}
	if _, err := s.board.LoadPosts(ctx, page); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load posts").SetInternal(err)
	}

	_, err := s.board.SubmitPost(ctx, page, username, content)
	switch {
	case err == nil:
		return c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, domain.ErrEmptyField):
		return s.renderPage(c, http.StatusUnprocessableEntity, page)
	default:
		page.Alert("Your post could not be saved.")
		s.logger.ErrorContext(ctx, "form post not persisted", "error", err)
		return s.renderPage(c, http.StatusInternalServerError, page)
	}
}

func (s *Server) handleListPosts(c echo.Context) error {
	page := &boardPage{}
	posts, err := s.board.LoadPosts(c.Request().Context(), page)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorJSON{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, postsJSON{Posts: toJSON(posts)})
}

func (s *Server) handleCreatePost(c echo.Context) error {
	var body postJSON
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON{Error: "invalid JSON body"})
	}

	page := &boardPage{}
	post, err := s.board.SubmitPost(c.Request().Context(), page, body.Username, body.Content)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, postJSON{Username: post.Username, Content: post.Content})
	case errors.Is(err, domain.ErrEmptyField):
		return c.JSON(http.StatusUnprocessableEntity, errorJSON{Error: page.Notice})
	default:
		return c.JSON(http.StatusInternalServerError, errorJSON{Error: err.Error()})
	}
}

func (s *Server) renderPage(c echo.Context, status int, page *boardPage) error {
	var buf bytes.Buffer
	if err := page.render(&buf); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not render board").SetInternal(err)
	}

	return c.HTMLBlob(status, buf.Bytes())
}

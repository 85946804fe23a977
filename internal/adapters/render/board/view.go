package board

import (
	"fmt"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func renderView(posts []domain.Post, s styles) string {
	lines := []string{
		s.title.Render("Discussion Board"),
		s.header.Render(fmt.Sprintf("posts: %d", len(posts))),
	}

	if len(posts) == 0 {
		lines = append(lines, s.empty.Render("No posts yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, post := range posts {
		lines = append(lines, renderPost(post, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPost(post domain.Post, s styles) string {
	return s.post.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		s.username.Render(post.Username),
		s.content.Render(post.Content),
	))
}

// RenderAlert styles a validation message for terminal output.
func RenderAlert(message string) string {
	return newStyles().alert.Render(message)
}

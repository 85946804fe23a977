package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/bnema/stockboard-cli/internal/ports"
)

const ValidationAlert = "Please fill out both fields before submitting."

type BoardService struct {
	repo   ports.PostRepository
	logger *slog.Logger
}

func NewBoardService(repo ports.PostRepository, logger *slog.Logger) *BoardService {
	if logger == nil {
		logger = slog.Default()
	}

	return &BoardService{repo: repo, logger: logger}
}

// LoadPosts renders every stored post in stored order. A corrupt store is not recovered
// from: the error is returned and nothing is rendered.
func (s *BoardService) LoadPosts(ctx context.Context, view ports.PostView) ([]domain.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}

	for _, post := range posts {
		view.AppendPost(post)
	}

	return posts, nil
}

// SubmitPost renders the post before persisting it. If the write fails afterwards the view
// already shows a post that storage does not have; the error is returned to the caller.
func (s *BoardService) SubmitPost(ctx context.Context, view ports.PostView, username, content string) (domain.Post, error) {
	post, err := domain.NewPost(username, content)
	if err != nil {
		view.Alert(ValidationAlert)
		return domain.Post{}, err
	}

	view.AppendPost(post)

	if err := s.repo.Append(ctx, post); err != nil {
		s.logger.ErrorContext(ctx, "post rendered but not persisted", "username", post.Username, "error", err)
		return post, fmt.Errorf("persist post: %w", err)
	}

	view.ResetForm()
	s.logger.InfoContext(ctx, "post submitted", "username", post.Username)

	return post, nil
}

package ports

import (
	"context"

	"github.com/bnema/stockboard-cli/internal/domain"
)

type PostRepository interface {
	List(ctx context.Context) ([]domain.Post, error)
	Append(ctx context.Context, post domain.Post) error
}

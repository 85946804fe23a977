package ports

import (
	"context"

	"github.com/bnema/stockboard-cli/internal/domain"
)

// TrendFetcher talks to the remote trends endpoint. Transport and decode failures are
// returned as errors wrapping domain.ErrFetchFailed; an error reported by the endpoint
// comes back inside the response.
type TrendFetcher interface {
	FetchTrends(ctx context.Context, req domain.TrendRequest) (domain.TrendResponse, error)
}

package ports

import "github.com/bnema/stockboard-cli/internal/domain"

// ColorSource hands out one line color per dataset, in dataset order.
type ColorSource interface {
	NextColor() domain.RGB
}

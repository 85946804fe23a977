package application

import (
	"math/rand/v2"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/bnema/stockboard-cli/internal/ports"
)

// RandomColors draws every component uniformly from 0..254. Nothing is cached, so a
// symbol may change color between redraws.
type RandomColors struct{}

var _ ports.ColorSource = RandomColors{}

func (RandomColors) NextColor() domain.RGB {
	return domain.RGB{
		R: uint8(rand.IntN(255)),
		G: uint8(rand.IntN(255)),
		B: uint8(rand.IntN(255)),
	}
}

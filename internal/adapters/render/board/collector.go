package board

import (
	"sync"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/bnema/stockboard-cli/internal/ports"
)

// Collector is a PostView that records what the board asked it to show.
type Collector struct {
	mu     sync.Mutex
	posts  []domain.Post
	alerts []string
	resets int
}

var _ ports.PostView = (*Collector)(nil)

func (c *Collector) AppendPost(post domain.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = append(c.posts, post)
}

func (c *Collector) Alert(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = append(c.alerts, message)
}

func (c *Collector) ResetForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resets++
}

func (c *Collector) Posts() []domain.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Post(nil), c.posts...)
}

// LastAlert returns the most recent alert, or "" when none was raised.
func (c *Collector) LastAlert() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.alerts) == 0 {
		return ""
	}
	return c.alerts[len(c.alerts)-1]
}

func (c *Collector) Reset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resets > 0
}

package server

import (
	"html/template"
	"io"
	"sync"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/bnema/stockboard-cli/internal/ports"
)

var boardTemplate = template.Must(template.New("board").Parse(boardHTMLTemplate))

// boardPage is the PostView behind one HTML response.
type boardPage struct {
	mu       sync.Mutex
	Posts    []domain.Post
	Notice   string
	Username string
	Content  string
}

var _ ports.PostView = (*boardPage)(nil)

func (p *boardPage) AppendPost(post domain.Post) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Posts = append(p.Posts, post)
}

func (p *boardPage) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Notice = message
}

func (p *boardPage) ResetForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Username = ""
	p.Content = ""
}

func (p *boardPage) render(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return boardTemplate.Execute(w, p)
}

const boardHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>Discussion Board</title>
  <style>
    body { margin: 0 auto; max-width: 720px; padding: 24px; font-family: sans-serif; color: #1f1f1f; }
    .alert { padding: 10px 14px; margin-bottom: 16px; background: #fdecea; color: #a4262c; border-radius: 4px; }
    .post { border-left: 3px solid #e0e0e0; padding: 4px 12px; margin: 12px 0; }
    .post h3 { margin: 4px 0; }
    form input, form textarea { display: block; width: 100%; margin: 6px 0 12px; }
  </style>
</head>
<body>
  <h1>Discussion Board</h1>
  {{if .Notice}}<div class="alert" role="alert">{{.Notice}}</div>{{end}}
  <form id="discussion-form" method="post" action="/posts">
    <label for="username">Username</label>
    <input type="text" id="username" name="username" value="{{.Username}}" />
    <label for="post-content">Post</label>
    <textarea id="post-content" name="post-content" rows="4">{{.Content}}</textarea>
    <button type="submit">Post</button>
  </form>
  <div id="posts">
  {{range .Posts}}
    <div class="post">
      <h3>{{.Username}}</h3>
      <p>{{.Content}}</p>
    </div>
  {{end}}
  </div>
</body>
</html>
`

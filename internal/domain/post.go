package domain

import "strings"

// Post is one discussion board entry. Posts have no identity; their position in the
// stored sequence is their display order.
type Post struct {
	Username string
	Content  string
}

// NewPost trims both fields and rejects the post when either one ends up empty.
func NewPost(username, content string) (Post, error) {
	post := Post{
		Username: strings.TrimSpace(username),
		Content:  strings.TrimSpace(content),
	}
	if err := post.Validate(); err != nil {
		return Post{}, err
	}

	return post, nil
}

func (p Post) Validate() error {
	if strings.TrimSpace(p.Username) == "" || strings.TrimSpace(p.Content) == "" {
		return ErrEmptyField
	}

	return nil
}

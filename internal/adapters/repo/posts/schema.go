package posts

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bnema/stockboard-cli/internal/domain"
)

const (
	currentSchemaVersion = 1
	legacySchemaVersion  = 0
)

type envelopeSchema struct {
	Version int          `json:"version"`
	Posts   []postSchema `json:"posts"`
}

type postSchema struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

// decodeEnvelope accepts the versioned envelope and the unversioned bare array written
// before envelopes existed. A stored JSON null reads as an empty board; anything else,
// a blank value included, is corrupt and surfaces as an error.
func decodeEnvelope(raw string) (envelopeSchema, error) {
	data := bytes.TrimSpace([]byte(raw))

	switch {
	case len(data) == 0:
		return envelopeSchema{}, fmt.Errorf("decode posts: blank value: %w", domain.ErrCorruptStore)
	case bytes.Equal(data, []byte("null")):
		return envelopeSchema{Version: currentSchemaVersion}, nil
	case data[0] == '[':
		var legacy []postSchema
		if err := json.Unmarshal(data, &legacy); err != nil {
			return envelopeSchema{}, fmt.Errorf("decode legacy posts: %w: %w", domain.ErrCorruptStore, err)
		}
		return envelopeSchema{Version: legacySchemaVersion, Posts: legacy}, nil
	}

	var envelope envelopeSchema
	if err := json.Unmarshal(data, &envelope); err != nil {
		return envelopeSchema{}, fmt.Errorf("decode posts envelope: %w: %w", domain.ErrCorruptStore, err)
	}
	if envelope.Version > currentSchemaVersion {
		return envelopeSchema{}, fmt.Errorf("posts envelope version %d (current %d): %w", envelope.Version, currentSchemaVersion, domain.ErrUnsupportedData)
	}

	return envelope, nil
}

func encodeEnvelope(envelope envelopeSchema) (string, error) {
	envelope.Version = currentSchemaVersion
	if envelope.Posts == nil {
		envelope.Posts = []postSchema{}
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("encode posts envelope: %w", err)
	}

	return string(data), nil
}

func toSchema(post domain.Post) postSchema {
	return postSchema{Username: post.Username, Content: post.Content}
}

func fromSchema(post postSchema) domain.Post {
	return domain.Post{Username: post.Username, Content: post.Content}
}

package file

import (
	"fmt"

	"github.com/bnema/stockboard-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int               `toml:"version"`
	Items   map[string]string `toml:"items"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.Items == nil {
		s.Items = map[string]string{}
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("storage file schema version %d (current %d): %w", s.Version, currentSchemaVersion, domain.ErrUnsupportedData)
	}

	return nil
}

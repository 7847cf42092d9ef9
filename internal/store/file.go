package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ryanisaacg/budget/internal/model"
)

// FileStore persists the tree to a YAML file. The format is the natural
// marshalling of the account tree, so the budget file can be authored or
// edited by hand.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the YAML file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the tree from the budget file. A missing file is not an
// error; it just means no tree has been saved yet.
func (s *FileStore) Load() (*model.Account, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read budget file: %w", err)
	}
	var root model.Account
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse budget file: %w", err)
	}
	return &root, nil
}

// Save writes the tree back to the budget file.
func (s *FileStore) Save(root *model.Account) error {
	data, err := yaml.Marshal(root)
	if err != nil {
		return fmt.Errorf("marshal budget tree: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write budget file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

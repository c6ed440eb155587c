package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileKeychain stores one credential per file under a private directory.
// Files are created 0600 and the directory 0700. Credentials deliberately
// live apart from the note collection: two different persistence classes.
type FileKeychain struct {
	dir string
}

// NewFileKeychain creates the keychain rooted at dir, creating the
// directory if needed.
func NewFileKeychain(dir string) (*FileKeychain, error) {
	if dir == "" {
		return nil, fmt.Errorf("keychain directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create keychain directory: %w", err)
	}
	return &FileKeychain{dir: dir}, nil
}

func (k *FileKeychain) path(name string) (string, error) {
	// Keys are fixed identifiers, never user input, but refuse path
	// separators anyway.
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid keychain key: %q", name)
	}
	return filepath.Join(k.dir, name), nil
}

// Get returns the stored value, or ("", nil) when the key is absent.
func (k *FileKeychain) Get(name string) (string, error) {
	p, err := k.path(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set writes the value with owner-only permissions.
func (k *FileKeychain) Set(name, value string) error {
	p, err := k.path(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, []byte(value), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Delete removes the key. Deleting an absent key is a no-op.
func (k *FileKeychain) Delete(name string) error {
	p, err := k.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

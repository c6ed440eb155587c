package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Note is the central entity of the domain. The ID is an opaque string:
// server-assigned for remote notes, minted by NewLocalID for local ones.
// It is stable for the lifetime of the note and never reused.
type Note struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Blank reports whether the note has no title and no content after
// trimming. Blank notes are never persisted.
func (n Note) Blank() bool {
	return strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Content) == ""
}

// NewLocalID mints an id for a locally created note. The "local-" prefix
// namespaces it away from server-assigned ids; the uuid suffix keeps two
// notes created within the same millisecond distinct.
func NewLocalID() string {
	return fmt.Sprintf("local-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

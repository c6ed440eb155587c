package core

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal wiring for observability.
type RepositoryState struct {
	LocalStore string `json:"local_store"`
	Remote     string `json:"remote"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	return RepositoryState{
		LocalStore: componentType(r.local),
		Remote:     componentType(r.remote),
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

func componentType(v any) string {
	if comp, ok := v.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return "unknown"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

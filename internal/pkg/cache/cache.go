// Package cache stores JSON-encoded lookup results keyed by string.
package cache

import (
	"context"
	"time"
)

// Cache is a best-effort value cache. A miss is reported as (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// Nop is a Cache that never stores anything. Used when Redis is not configured.
type Nop struct{}

func (Nop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Nop) Set(context.Context, string, any) error { return nil }
func (Nop) Delete(context.Context, ...string) error { return nil }

// Namespaces shared by every writer and evicter of a cached entity.
const (
	SeatNamespace     = "seat"
	EmployeeNamespace = "employee"
)

// Key joins a namespace and an id, e.g. Key("seat", id) -> "seat:<id>".
func Key(namespace, id string) string {
	return namespace + ":" + id
}

// DefaultTTL applies when a caller passes a non-positive ttl.
const DefaultTTL = 5 * time.Minute

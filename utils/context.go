package utils

import (
	"context"
	"time"
)

const (
	// DefaultTimeout bounds single repository calls made by HTTP handlers
	DefaultTimeout = 10 * time.Second

	// LongTimeout is for uploads: extraction plus the insert
	LongTimeout = 30 * time.Second
)

func WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, DefaultTimeout)
}

func WithLongTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, LongTimeout)
}

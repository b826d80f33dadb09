package view

import (
	"context"
	"time"
)

const dbTimeout = 5 * time.Second

// FormatTimestamp formats a record time in local time, to the minute.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

package tools

import (
	"context"
	"log"
)

// JobFunc defines a function executed asynchronously.
type JobFunc func(ctx context.Context) error

// Dispatch runs the provided job in a separate goroutine, fire-and-forget.
// Errors are logged with the job name, never returned.
func Dispatch(ctx context.Context, name string, fn JobFunc) {
	go func() {
		if err := fn(ctx); err != nil {
			log.Printf("[%s] background job failed: %v", name, err)
		}
	}()
}

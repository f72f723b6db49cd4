package snapshot

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// mergeSources fans every source into a single channel. Each source runs
// in its own goroutine, so order within a source is preserved while the
// merged stream yields whichever source is ready first. The returned
// channel closes only after every source has returned; the returned wait
// function reports the first source error.
//
// A source error cancels the group context, which unblocks every other
// source at its next send or suspension point, so a structural scan
// failure surfaces promptly instead of hanging the consumer. Cancelling
// ctx gives the consumer the same early-exit path: sources observe the
// cancellation between yields and release their directory handles before
// the channel closes.
func mergeSources(ctx context.Context, sources []Source) (<-chan string, func() error) {
	out := make(chan string)
	group, groupCtx := errgroup.WithContext(ctx)

	for _, source := range sources {
		source := source
		group.Go(func() error {
			return source(groupCtx, out)
		})
	}

	go func() {
		_ = group.Wait()
		close(out)
	}()

	return out, group.Wait
}

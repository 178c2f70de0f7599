package channel_utils

import (
	"context"
	"sync"

	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
)

// MergeChannels fans in the given channels on the shared worker pool. The
// merged channel closes once every input is drained or the context is
// cancelled, whichever comes first.
func MergeChannels[T any](ctx context.Context, workerPool outbound.TaskDispatcher, channels ...<-chan T) (<-chan T, error) {
	var wg sync.WaitGroup
	merged := make(chan T)

	drain := func(c <-chan T) {
		defer wg.Done()
		for val := range c {
			select {
			case merged <- val:
			case <-ctx.Done():
				return
			}
		}
	}

	wg.Add(len(channels))
	for _, c := range channels {
		ch := c
		if err := workerPool.Submit(func() { drain(ch) }); err != nil {
			wg.Done()
			return nil, err
		}
	}

	if err := workerPool.Submit(func() {
		wg.Wait()
		close(merged)
	}); err != nil {
		return nil, err
	}

	return merged, nil
}

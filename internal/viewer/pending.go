package viewer

import "context"

// pendingPaths hands file paths chosen off the main thread to the frame loop.
type pendingPaths struct {
	ch chan string
}

func newPendingPaths() *pendingPaths {
	return &pendingPaths{ch: make(chan string, 1)}
}

// offer blocks until the frame loop has room for path or ctx is done.
func (p *pendingPaths) offer(ctx context.Context, path string) bool {
	select {
	case p.ch <- path:
		return true
	case <-ctx.Done():
		return false
	}
}

// take returns a waiting path without blocking.
func (p *pendingPaths) take() (string, bool) {
	select {
	case path := <-p.ch:
		return path, true
	default:
		return "", false
	}
}

package outbound

// TaskDispatcher abstracts the shared worker pool so services never spawn
// bare goroutines. Submit returns an error when the pool is closed or full.
type TaskDispatcher interface {
	Submit(task func()) error
}

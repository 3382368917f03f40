package handoff

import "context"

// ReturnLink is the dispatcher used over HTTP: the link goes back to the
// browser in the response and the page opens it. Nothing has been opened
// when Dispatch returns; the page reports the open separately.
type ReturnLink struct{}

func (ReturnLink) Dispatch(context.Context, string) error { return nil }

func (ReturnLink) Deferred() bool { return true }

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(ctx context.Context, link string) error

func (f DispatchFunc) Dispatch(ctx context.Context, link string) error { return f(ctx, link) }

// IsDeferred reports whether d leaves the actual open to someone else.
func IsDeferred(d Dispatcher) bool {
	deferred, ok := d.(interface{ Deferred() bool })
	return ok && deferred.Deferred()
}

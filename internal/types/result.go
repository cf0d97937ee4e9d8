package types

// TaskResult is the outcome of dispatching one intent. Results for an
// utterance are always reported in the original intent order, one slot per
// intent, regardless of handler completion order.
type TaskResult struct {
	Intent Intent
	Output string
	Err    error
}

// Ok reports whether the handler completed without error.
func (r TaskResult) Ok() bool { return r.Err == nil }

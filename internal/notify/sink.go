package notify

// Sink is the one-way notification capability workers fire into. The real
// implementation speaks through the presentation layer (text-to-speech or
// console); failures are logged by the caller and are never fatal.
type Sink interface {
	Notify(message string) error
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(message string) error

func (f SinkFunc) Notify(message string) error { return f(message) }

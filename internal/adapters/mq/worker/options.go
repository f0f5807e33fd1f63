package worker

import "github.com/scorewatch/scorewatch/pkg/logger"

// Option applies a configuration option to the Dispatcher.
type Option func(*Dispatcher)

// WithName sets the worker name used in logs.
func WithName(name string) Option {
	return func(w *Dispatcher) {
		if name != "" {
			w.name = name
			w.logger = logger.Get().Named(name)
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(log logger.Logger) Option {
	return func(w *Dispatcher) {
		if log != nil {
			w.logger = log
		}
	}
}

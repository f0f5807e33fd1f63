package registry

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithOnSubscribe sets a hook invoked after every successful Subscribe.
// The poll scheduler uses it as its level-triggered wake signal.
func WithOnSubscribe(hook func()) Option {
	return func(r *Registry) {
		if hook != nil {
			r.onSubscribe = hook
		}
	}
}

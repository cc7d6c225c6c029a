package core

// Hooks holds typed observation callbacks for a sequence traversal.
// All fields are optional - nil means no observation for that event.
// Hooks run synchronously on the pulling goroutine, so they should be fast.
type Hooks[T any] struct {
	OnStart    func()      // First pull through the stage
	OnValue    func(T)     // Element about to be handed downstream
	OnError    func(error) // Upstream failed
	OnComplete func()      // Traversal ended, after OnError on failure
}

// WithHooks returns a pass-through stage invoking hooks as elements flow
// through it. Hooks only fire for elements that are actually pulled: a
// short-circuiting terminal that stops early never triggers OnComplete.
//
// Calling WithHooks several times stacks the stages; hooks closer to the
// source observe each element first.
func (s Sequence[T]) WithHooks(hooks Hooks[T]) Sequence[T] {
	up := s.Iterator()
	started := false
	return New[T](Fuse(func() (T, bool, error) {
		if !started {
			started = true
			if hooks.OnStart != nil {
				hooks.OnStart()
			}
		}

		value, ok, err := pull(up)
		if ok {
			if hooks.OnValue != nil {
				hooks.OnValue(value)
			}
			return value, true, nil
		}
		if err != nil && hooks.OnError != nil {
			hooks.OnError(err)
		}
		if hooks.OnComplete != nil {
			hooks.OnComplete()
		}
		return value, false, err
	}))
}

// SafeHooks wraps every hook with panic recovery. Use it when hooks are
// user-provided and a panicking observer should not abort the traversal.
// If panicHandler is nil, panics are silently recovered.
func SafeHooks[T any](hooks Hooks[T], panicHandler func(any)) Hooks[T] {
	if panicHandler == nil {
		panicHandler = func(any) {}
	}
	guard := func(fn func()) {
		defer func() {
			if r := recover(); r != nil {
				panicHandler(r)
			}
		}()
		fn()
	}

	var safe Hooks[T]
	if hooks.OnStart != nil {
		safe.OnStart = func() { guard(hooks.OnStart) }
	}
	if hooks.OnValue != nil {
		safe.OnValue = func(v T) { guard(func() { hooks.OnValue(v) }) }
	}
	if hooks.OnError != nil {
		safe.OnError = func(err error) { guard(func() { hooks.OnError(err) }) }
	}
	if hooks.OnComplete != nil {
		safe.OnComplete = func() { guard(hooks.OnComplete) }
	}
	return safe
}

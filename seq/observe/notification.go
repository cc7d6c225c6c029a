package observe

import (
	"github.com/lguimbarda/min-seq/seq/core"
)

// Notification is a materialized traversal event. It lets downstream
// stages treat values, the failure and the end of the sequence uniformly.
type Notification[T any] struct {
	Kind  NotificationKind
	Value T
	Error error
}

// NotificationKind indicates the type of notification.
type NotificationKind int

const (
	NotificationValue NotificationKind = iota
	NotificationError
	NotificationComplete
)

// Materialize creates a Stage that turns each element into a value
// notification and the end of the upstream into a final error or complete
// notification. The materialized sequence itself never fails.
func Materialize[T any]() core.Stage[T, Notification[T]] {
	return func(s core.Sequence[T]) core.Sequence[Notification[T]] {
		up := s.Iterator()
		ended := false
		return core.New[Notification[T]](core.Fuse(func() (Notification[T], bool, error) {
			if ended {
				return Notification[T]{}, false, nil
			}
			if up.HasNext() {
				return Notification[T]{Kind: NotificationValue, Value: up.Next()}, true, nil
			}
			ended = true
			if err := up.Err(); err != nil {
				return Notification[T]{Kind: NotificationError, Error: err}, true, nil
			}
			return Notification[T]{Kind: NotificationComplete}, true, nil
		}))
	}
}

// Dematerialize creates a Stage reversing Materialize: value notifications
// become elements, an error notification fails the sequence and a complete
// notification ends it.
func Dematerialize[T any]() core.Stage[Notification[T], T] {
	return func(s core.Sequence[Notification[T]]) core.Sequence[T] {
		up := s.Iterator()
		return core.New[T](core.Fuse(func() (T, bool, error) {
			var zero T
			if !up.HasNext() {
				return zero, false, up.Err()
			}
			n := up.Next()
			switch n.Kind {
			case NotificationValue:
				return n.Value, true, nil
			case NotificationError:
				return zero, false, n.Error
			}
			return zero, false, nil
		}))
	}
}

package seqerrors

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/lguimbarda/min-seq/seq/core"
)

// ErrPanic wraps a recovered panic value as an error. It is produced when a
// user-provided function panics upstream of a Recover stage. The stack
// excludes internal min-seq frames so it points at user code.
type ErrPanic struct {
	Value any
	Stack string // Cleaned stack trace
}

func (e ErrPanic) Error() string {
	if e.Stack != "" {
		return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is itself an error, so a
// panic(err) can still be matched with errors.Is.
func (e ErrPanic) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// NewPanicError creates an ErrPanic from a recovered value with a cleaned
// stack trace. Call it from the deferred function that recovered.
func NewPanicError(recovered any) ErrPanic {
	return ErrPanic{
		Value: recovered,
		Stack: cleanStack(captureStack(4)), // skip: runtime.Callers, captureStack, NewPanicError, defer func
	}
}

// Recover creates a Stage that turns a panic raised while pulling the
// upstream into a failure with an ErrPanic. The traversal ends there; the
// panicking upstream is not pulled again.
//
// A Next past the end of the Recover stage itself still panics: misuse of
// the iterator is not a failure of the data.
func Recover[T any]() core.Stage[T, T] {
	return func(s core.Sequence[T]) core.Sequence[T] {
		up := s.Iterator()
		return core.New[T](core.Fuse(func() (value T, ok bool, err error) {
			defer func() {
				if r := recover(); r != nil {
					var zero T
					value, ok, err = zero, false, NewPanicError(r)
				}
			}()
			if up.HasNext() {
				return up.Next(), true, nil
			}
			return value, false, up.Err()
		}))
	}
}

// RecoverWith is Recover followed by a switch to the sequence handler
// returns for the recovered panic.
func RecoverWith[T any](handler func(ErrPanic) core.Sequence[T]) core.Stage[T, T] {
	catch := CatchError(isPanic, func(err error) core.Sequence[T] {
		return handler(err.(ErrPanic))
	})
	return func(s core.Sequence[T]) core.Sequence[T] {
		return catch(Recover[T]()(s))
	}
}

func isPanic(err error) bool {
	_, ok := err.(ErrPanic)
	return ok
}

// captureStack returns the current stack trace as a string.
func captureStack(skip int) string {
	const maxFrames = 32
	var pcs [maxFrames]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}

// cleanStack removes internal min-seq frames from a stack trace, keeping
// user code and standard library frames. Test files of the library count
// as user code.
func cleanStack(stack string) string {
	lines := strings.Split(stack, "\n")
	var result []string
	var skipNext bool

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Function lines are unindented; each is followed by a file:line.
		if !strings.HasPrefix(line, "\t") {
			if strings.Contains(line, "github.com/lguimbarda/min-seq/seq/") && !strings.Contains(line, "_test.") {
				skipNext = true
				continue
			}
			skipNext = false
		} else if skipNext {
			continue
		}

		result = append(result, line)
	}

	return strings.Join(result, "\n")
}

package bruntime

import "fmt"

// Error is a fatal script error: the 1-based source line plus a message.
// It propagates out of Run untouched; nothing inside the engine retries or
// swallows it.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// errorAt builds an Error from a 0-based line index.
func errorAt(idx int, format string, args ...any) *Error {
	return &Error{Line: idx + 1, Msg: fmt.Sprintf(format, args...)}
}

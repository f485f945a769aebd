package document

import "fmt"

// UsageError reports a call the assembler cannot honor in its current state,
// or content it cannot represent. It is fatal to the render.
type UsageError struct {
	Op  string
	Msg string
	Err error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("document %s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("document %s: %s", e.Op, e.Msg)
}

func (e *UsageError) Unwrap() error { return e.Err }

// ResourceError reports that the destination could not be opened or written.
// The destination has been released by the time it is returned.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("document %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

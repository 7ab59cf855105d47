package cli

import "fmt"

// The error kinds from §7. Each is a small named struct with an
// Error() string method rather than sentinel string comparison.

// UsageError is an unknown object or verb. Unknown options are rejected by
// main's flag parsing before dispatch, also with exit code 1.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string { return e.Usage }

// MissingArgument is a keyword without a following value, or a required
// keyword absent after the argument loop finished.
type MissingArgument struct {
	Keyword string
}

func (e *MissingArgument) Error() string {
	return fmt.Sprintf("missing argument for %q", e.Keyword)
}

// InvalidArgument is a value that fails type/range conversion, or an
// unknown enum label.
type InvalidArgument struct {
	Keyword string
	Value   string
	Reason  string
}

func (e *InvalidArgument) Error() string {
	return fmt.Sprintf("invalid value %q for %q: %s", e.Value, e.Keyword, e.Reason)
}

// AllocationFailure reports that an outbound request could not be built —
// in practice, a dpll.Encoder error such as a message that ran out of room
// (see dpll.ErrBufferOverflow) or a nested block that could not be opened
// or closed. It aborts the current message; the operation as a whole fails.
type AllocationFailure struct {
	Reason string
}

func (e *AllocationFailure) Error() string {
	return fmt.Sprintf("allocation failure: %s", e.Reason)
}

// ExitCode maps an error from an Operation Executor to the process exit
// code §6.1 specifies: 0 on success, 1 on any of the error kinds above
// (UsageError, MissingArgument, InvalidArgument, TransportUnavailable,
// KernelError all map to 1; a DecodeError reaching this boundary means it
// was hard — a single-reply operation — and also maps to 1).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

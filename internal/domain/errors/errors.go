package errors

// ValidationError rejects malformed caller input before any side effect.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// ImageNotFoundError reports a failed image pull.
type ImageNotFoundError struct {
	Image string
	Err   error
}

func (e ImageNotFoundError) Error() string {
	msg := "failed to pull image " + e.Image
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e ImageNotFoundError) Unwrap() error { return e.Err }

// PortsExhaustedError reports that no free host port is left in the range.
type PortsExhaustedError struct {
	Start int
	End   int
}

func (e PortsExhaustedError) Error() string {
	return "no free ports available in configured range"
}

// RuntimeError wraps a failed engine command together with its diagnostic
// output.
type RuntimeError struct {
	Op  string
	Err error
}

func (e RuntimeError) Error() string {
	return "docker " + e.Op + " failed: " + e.Err.Error()
}

func (e RuntimeError) Unwrap() error { return e.Err }

// NotificationError reports a failed expiry callback delivery. Logged only,
// never returned to a caller.
type NotificationError struct {
	URL string
	Err error
}

func (e NotificationError) Error() string {
	return "expiry notification to " + e.URL + " failed: " + e.Err.Error()
}

func (e NotificationError) Unwrap() error { return e.Err }

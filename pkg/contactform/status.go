package contactform

// Status is the submission lifecycle of a form. Exactly one of Idle,
// Submitting, Succeeded or Failed.
type Status interface {
	status()
	String() string
}

// Idle accepts edits and submit actions
type Idle struct{}

// Submitting means one request is in flight; submit actions are rejected
type Submitting struct{}

// Succeeded is shown until the reset delay elapses, then the form returns to Idle
type Succeeded struct{}

// Failed holds a human-readable reason and persists until the next submit
type Failed struct {
	Reason string
}

func (Idle) status()       {}
func (Submitting) status() {}
func (Succeeded) status()  {}
func (Failed) status()     {}

func (Idle) String() string       { return "idle" }
func (Submitting) String() string { return "submitting" }
func (Succeeded) String() string  { return "succeeded" }
func (f Failed) String() string   { return "failed: " + f.Reason }

// CanSubmit reports whether a submit action is accepted in status s
func CanSubmit(s Status) bool {
	_, busy := s.(Submitting)
	return !busy
}

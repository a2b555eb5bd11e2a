package plantuml

// EncodingError reports a payload that cannot be turned into (or recovered
// from) a diagram token.
type EncodingError struct {
	Reason string
}

// Error implements error.
func (e *EncodingError) Error() (msg string) {
	msg = "diagram encoding failed: " + e.Reason
	return msg
}

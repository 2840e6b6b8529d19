package failure

type Severity int

// pipeline control flow
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

// ClassifiedError is returned by every pipeline stage.
// Severity is advisory: nothing in this module retries automatically,
// the operator decides whether a recoverable failure is worth a re-run.
type ClassifiedError interface {
	error
	Severity() Severity
}

// IsRecoverable reports whether err is a ClassifiedError marked recoverable.
func IsRecoverable(err error) bool {
	ce, ok := err.(ClassifiedError)
	if !ok {
		return false
	}
	return ce.Severity() == SeverityRecoverable
}

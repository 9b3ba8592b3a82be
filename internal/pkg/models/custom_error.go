package models

// CustomError pairs a stable KARAT1_* code, which loan events and API
// clients key on, with a human-readable message. The full catalog lives in
// the consts package; always return those shared instances so callers can
// match by identity.
type CustomError struct {
	Code    string
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// ErrorCode returns the machine-readable code carried into loan events.
func (e *CustomError) ErrorCode() string {
	return e.Code
}

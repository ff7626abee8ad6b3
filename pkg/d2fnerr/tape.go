package d2fnerr

// TapeError marks a failure opening or issuing an ioctl against a tape
// device. This collaborator never shares an error type with the SQLite
// archive store: the two fail for unrelated reasons.
type TapeError struct {
	*baseError
	device string
}

// NewTapeError creates a TapeError for the given device path.
func NewTapeError(err error, code Code, msg, device string) *TapeError {
	return &TapeError{baseError: newBaseError(err, code, msg), device: device}
}

// WithDetail attaches contextual information while preserving the TapeError type.
func (te *TapeError) WithDetail(key string, value any) *TapeError {
	te.baseError.WithDetail(key, value)
	return te
}

// Device returns the device path involved in the error.
func (te *TapeError) Device() string {
	return te.device
}

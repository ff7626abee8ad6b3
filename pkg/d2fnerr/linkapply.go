package d2fnerr

// LinkApplyError marks a failure while replacing a duplicate file with a
// hard link to its group's keeper — always a per-file failure under the
// taxonomy: the applier logs it and continues with the next file in the
// group rather than aborting the run.
type LinkApplyError struct {
	*baseError
	keeper      string
	destination string
}

// NewLinkApplyError creates a LinkApplyError for the given destination path.
func NewLinkApplyError(err error, code Code, msg, destination string) *LinkApplyError {
	return &LinkApplyError{baseError: newBaseError(err, code, msg), destination: destination}
}

// WithKeeper records which file the destination was meant to link to.
func (le *LinkApplyError) WithKeeper(keeper string) *LinkApplyError {
	le.keeper = keeper
	return le
}

// WithDetail attaches contextual information while preserving the LinkApplyError type.
func (le *LinkApplyError) WithDetail(key string, value any) *LinkApplyError {
	le.baseError.WithDetail(key, value)
	return le
}

// Destination returns the path that failed to be replaced with a hard link.
func (le *LinkApplyError) Destination() string {
	return le.destination
}

// Keeper returns the path the destination was meant to link to.
func (le *LinkApplyError) Keeper() string {
	return le.keeper
}

package d2fnerr

// InventoryIOError marks a fatal failure while writing or reading the
// binary inventory format — fatal to the export/import step, per the
// failure taxonomy, unlike a per-file hash/open error.
type InventoryIOError struct {
	*baseError
	path   string
	offset int64
}

// NewInventoryIOError creates an InventoryIOError for the given inventory path.
func NewInventoryIOError(err error, code Code, msg, path string) *InventoryIOError {
	return &InventoryIOError{baseError: newBaseError(err, code, msg), path: path}
}

// WithOffset records the byte offset within the inventory file being processed.
func (ie *InventoryIOError) WithOffset(offset int64) *InventoryIOError {
	ie.offset = offset
	return ie
}

// WithDetail attaches contextual information while preserving the InventoryIOError type.
func (ie *InventoryIOError) WithDetail(key string, value any) *InventoryIOError {
	ie.baseError.WithDetail(key, value)
	return ie
}

// Path returns the inventory file path involved in the error.
func (ie *InventoryIOError) Path() string {
	return ie.path
}

// Offset returns the byte offset within the file where the error occurred.
func (ie *InventoryIOError) Offset() int64 {
	return ie.offset
}

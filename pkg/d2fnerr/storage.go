package d2fnerr

// StorageError is a specialized error type for the SQLite-backed
// archive/tape metadata store. It embeds baseError and adds the context
// needed to pinpoint which row or statement was involved.
type StorageError struct {
	*baseError
	table string
	path  string
}

// NewStorageError creates a new storage-specific error.
func NewStorageError(err error, code Code, msg string) *StorageError {
	return &StorageError{baseError: newBaseError(err, code, msg)}
}

// WithTable records which table was being written or queried.
func (se *StorageError) WithTable(table string) *StorageError {
	se.table = table
	return se
}

// WithPath records the database file path involved in the error.
func (se *StorageError) WithPath(path string) *StorageError {
	se.path = path
	return se
}

// WithDetail attaches contextual information while preserving the StorageError type.
func (se *StorageError) WithDetail(key string, value any) *StorageError {
	se.baseError.WithDetail(key, value)
	return se
}

// Table returns the table name involved in the error, if any.
func (se *StorageError) Table() string {
	return se.table
}

// Path returns the database file path involved in the error.
func (se *StorageError) Path() string {
	return se.path
}

package d2fnerr

// Code is a stable, string-valued identifier for a class of failure.
type Code string

// Base codes, applicable across any layer.
const (
	CodeIO          Code = "IO_ERROR"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeInternal    Code = "INTERNAL_ERROR"
)

// Discovery (walker) codes.
const (
	// CodeWalkError marks a fatal failure surfaced by the filesystem walker,
	// as opposed to a per-file error the engine can skip past.
	CodeWalkError Code = "WALK_ERROR"
)

// Hashing codes.
const (
	CodeHashOpenFailure Code = "HASH_OPEN_FAILURE"
	CodeHashReadFailure Code = "HASH_READ_FAILURE"
	CodeHashConfig      Code = "HASH_CONFIG_ERROR"
)

// Inventory codes.
const (
	CodeInventoryHeaderCorrupt Code = "INVENTORY_HEADER_CORRUPT"
	CodeInventoryBodyCorrupt   Code = "INVENTORY_BODY_CORRUPT"
	CodeInventoryIO            Code = "INVENTORY_IO_ERROR"
)

// Link-apply codes.
const (
	CodeLinkUnlinkFailure Code = "LINK_UNLINK_FAILURE"
	CodeLinkCreateFailure Code = "LINK_CREATE_FAILURE"
)

// Storage (archivedb) codes.
const (
	CodeStorageOpenFailure  Code = "STORAGE_OPEN_FAILURE"
	CodeStorageQueryFailure Code = "STORAGE_QUERY_FAILURE"
)

// Tape device codes.
const (
	CodeTapeOpenFailure Code = "TAPE_OPEN_FAILURE"
	CodeTapeIOFailure   Code = "TAPE_IO_FAILURE"
)

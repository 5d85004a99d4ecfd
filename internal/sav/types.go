package sav

// Save file layout

const (
	// ScanStart is the first byte offset of the field record window.
	ScanStart = 0x000028

	// ScanEnd is the exclusive end of the field record window.
	ScanEnd = 0x03C800

	// ScanStride is the size of one record: a 4-byte field hash followed by
	// a 4-byte inline value or pointer.
	ScanStride = 8

	// SentinelHash marks the end of the field records.
	SentinelHash uint32 = 0xA3DB7114
)

// RecordValueOffset is the distance from the start of a record to its value slot.
const RecordValueOffset = 4

// PointerSize is the width of an indirect offset stored in a value slot.
const PointerSize = 4

// General Library Return and Error Codes

// Err represents library error return type
type Err uint32

const (
	OK                 Err = 0
	ErrFail            Err = 1
	ErrOutOfRange      Err = 2
	ErrUnsupportedType Err = 3
	ErrFileError       Err = 4
	ErrDefinitionParse Err = 5
	ErrConfig          Err = 6
	ErrInvalidParamVal Err = 7
	ErrLast            Err = 8
)

// ErrSeverity used to indicate the severity of an error or logger verbosity
type ErrSeverity uint32

const (
	ErrSevNone  ErrSeverity = 0
	ErrSevError ErrSeverity = 1
	ErrSevWarn  ErrSeverity = 2
	ErrSevInfo  ErrSeverity = 3
)

// NoOffset marks an error that is not tied to a buffer position.
const NoOffset = -1

package common

import (
	"errors"
	"fmt"
	"strings"

	"totktools/internal/sav"
)

// Error represents the library error object.
type Error struct {
	Code    sav.Err
	Sev     sav.ErrSeverity
	Offset  int
	Hash    uint32
	HasHash bool
	Message string
}

func NewError(sev sav.ErrSeverity, code sav.Err) *Error {
	return &Error{
		Code:   code,
		Sev:    sev,
		Offset: sav.NoOffset,
	}
}

func NewErrorMsg(sev sav.ErrSeverity, code sav.Err, msg string) *Error {
	return &Error{
		Code:    code,
		Sev:     sev,
		Offset:  sav.NoOffset,
		Message: msg,
	}
}

func NewErrorWithOffset(sev sav.ErrSeverity, code sav.Err, offset int, msg string) *Error {
	return &Error{
		Code:    code,
		Sev:     sev,
		Offset:  offset,
		Message: msg,
	}
}

// WithHash returns a copy of the error tagged with the field hash being decoded.
func (e *Error) WithHash(hash uint32) *Error {
	out := *e
	out.Hash = hash
	out.HasHash = true
	return &out
}

// Error implements the standard error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	switch e.Sev {
	case sav.ErrSevNone:
		return "LIBRARY INTERNAL ERROR: Invalid Error Object"
	case sav.ErrSevError:
		sb.WriteString("ERROR:")
	case sav.ErrSevWarn:
		sb.WriteString("WARN :")
	case sav.ErrSevInfo:
		sb.WriteString("INFO :")
	default:
		return "LIBRARY INTERNAL ERROR: Invalid Error Object"
	}

	sb.WriteString(fmt.Sprintf("0x%04x ", e.Code))

	if desc, ok := errorCodeDesc[e.Code]; ok {
		sb.WriteString(fmt.Sprintf("(%s) [%s]; ", desc.name, desc.msg))
	} else {
		sb.WriteString("(unknown); ")
	}

	if e.Offset != sav.NoOffset {
		sb.WriteString(fmt.Sprintf("Offset=0x%06x; ", e.Offset))
	}

	if e.HasHash {
		sb.WriteString(fmt.Sprintf("Hash=0x%08x; ", e.Hash))
	}

	sb.WriteString(e.Message)
	return sb.String()
}

// Is reports whether target is a library error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// IsCode reports whether any error in err's chain is a library error with the given code.
func IsCode(err error, code sav.Err) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// Code returns the library error code found in err's chain, sav.OK for nil
// and sav.ErrFail for foreign errors.
func Code(err error) sav.Err {
	if err == nil {
		return sav.OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return sav.ErrFail
}

// CodeName returns the symbolic name of code, e.g. "SAV_ERR_OUT_OF_RANGE".
func CodeName(code sav.Err) string {
	if desc, ok := errorCodeDesc[code]; ok {
		return desc.name
	}
	return fmt.Sprintf("SAV_ERR_0x%04X", uint32(code))
}

type errDesc struct {
	name string
	msg  string
}

var errorCodeDesc = map[sav.Err]errDesc{
	sav.OK:                 {"SAV_OK", "No Error."},
	sav.ErrFail:            {"SAV_ERR_FAIL", "General failure."},
	sav.ErrOutOfRange:      {"SAV_ERR_OUT_OF_RANGE", "Read beyond end of buffer."},
	sav.ErrUnsupportedType: {"SAV_ERR_UNSUPPORTED_TYPE", "Field type not supported by reader."},
	sav.ErrFileError:       {"SAV_ERR_FILE_ERROR", "File access error"},
	sav.ErrDefinitionParse: {"SAV_ERR_DEFINITION_PARSE", "Definition table parse error."},
	sav.ErrConfig:          {"SAV_ERR_CONFIG", "Invalid tool configuration."},
	sav.ErrInvalidParamVal: {"SAV_ERR_INVALID_PARAM_VAL", "Invalid value parameter passed to component."},
	sav.ErrLast:            {"SAV_ERR_LAST", "No error - error code end marker"},
}

// CodeInfo describes one library error code.
type CodeInfo struct {
	Code    sav.Err
	Name    string
	Message string
}

// Codes lists every library error code in ascending order, ending with the
// end marker.
func Codes() []CodeInfo {
	out := make([]CodeInfo, 0, len(errorCodeDesc))
	for code := sav.OK; code <= sav.ErrLast; code++ {
		desc, ok := errorCodeDesc[code]
		if !ok {
			continue
		}
		out = append(out, CodeInfo{Code: code, Name: desc.name, Message: desc.msg})
	}
	return out
}

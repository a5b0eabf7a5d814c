package errors

import (
	"fmt"
	"reflect"
)

const (
	// SuccessCode is returned for a nil error.
	SuccessCode uint32 = 0

	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Code returns the code of the root error that err wraps. Errors that do
// not wrap a registered root error are reported as internal (code 1).
func Code(err error) uint32 {
	if isNil(err) {
		return SuccessCode
	}

	type coder interface {
		Code() uint32
	}

	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// Info returns the code and log message that should be exposed to the
// caller. Internal errors are redacted unless debug is set.
func Info(err error, debug bool) (uint32, string) {
	if isNil(err) {
		return SuccessCode, ""
	}
	code := Code(err)
	if debug {
		return code, fmt.Sprintf("%+v", err)
	}
	if code == internalCode || ErrPanic.Is(err) {
		return code, internalLog
	}
	return code, err.Error()
}

func isNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}

package click2pptx

import (
	"errors"
	"fmt"
)

// ErrorKind classifies conversion failures.
type ErrorKind int

const (
	KindInputNotFound ErrorKind = iota + 1
	KindExtraction
	KindUnsupportedShape
	KindMalformedRegion
	KindImageNotFound
	KindImageDecode
	KindDocumentWrite
	KindConfig
)

// String returns the kind name used at the start of error messages.
func (k ErrorKind) String() string {
	switch k {
	case KindInputNotFound:
		return "InputNotFoundError"
	case KindExtraction:
		return "ExtractionError"
	case KindUnsupportedShape:
		return "UnsupportedShapeError"
	case KindMalformedRegion:
		return "MalformedRegionError"
	case KindImageNotFound:
		return "ImageNotFoundError"
	case KindImageDecode:
		return "ImageDecodeError"
	case KindDocumentWrite:
		return "DocumentWriteError"
	case KindConfig:
		return "ConfigError"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels for errors.Is, one per kind.
var (
	ErrInputNotFound    = errors.New(KindInputNotFound.String())
	ErrExtraction       = errors.New(KindExtraction.String())
	ErrUnsupportedShape = errors.New(KindUnsupportedShape.String())
	ErrMalformedRegion  = errors.New(KindMalformedRegion.String())
	ErrImageNotFound    = errors.New(KindImageNotFound.String())
	ErrImageDecode      = errors.New(KindImageDecode.String())
	ErrDocumentWrite    = errors.New(KindDocumentWrite.String())
	ErrConfig           = errors.New(KindConfig.String())
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInputNotFound:
		return ErrInputNotFound
	case KindExtraction:
		return ErrExtraction
	case KindUnsupportedShape:
		return ErrUnsupportedShape
	case KindMalformedRegion:
		return ErrMalformedRegion
	case KindImageNotFound:
		return ErrImageNotFound
	case KindImageDecode:
		return ErrImageDecode
	case KindDocumentWrite:
		return ErrDocumentWrite
	case KindConfig:
		return ErrConfig
	}
	return nil
}

// Error is the error type returned by every operation of this package.
// It matches both the sentinel of its kind and the wrapped cause with
// errors.Is.
type Error struct {
	Kind ErrorKind
	// Region is the zero-based index of the offending <area>, or -1.
	Region int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Region >= 0 {
		msg += fmt.Sprintf(": area %d", e.Region)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind ErrorKind, detail string, err error) *Error {
	return &Error{Kind: kind, Region: -1, Detail: detail, Err: err}
}

func regionError(kind ErrorKind, index int, detail string) *Error {
	return &Error{Kind: kind, Region: index, Detail: detail}
}

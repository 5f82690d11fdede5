package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError carries either a single field message or a map of
// field-level messages keyed by the wire field name.
type ValidationError struct {
	Field  string
	Msg    string
	Fields map[string]string
	Err    error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+e.Fields[k])
		}
		return strings.Join(parts, "; ")
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// FieldMessages returns the field-level messages, folding the single
// Field/Msg pair into the map when present.
func (e ValidationError) FieldMessages() map[string]string {
	out := make(map[string]string, len(e.Fields)+1)
	for k, v := range e.Fields {
		out[k] = v
	}
	if e.Field != "" {
		msg := e.Msg
		if msg == "" {
			msg = "invalid"
		}
		out[e.Field] = msg
	}
	return out
}

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type UnauthorizedError struct {
	Msg string
	Err error
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "unauthorized"
}

func (e UnauthorizedError) Unwrap() error { return e.Err }

type ForbiddenError struct {
	Msg string
	Err error
}

func (e ForbiddenError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "forbidden"
}

func (e ForbiddenError) Unwrap() error { return e.Err }

// UpstreamError is a failure of the remote API itself: transport errors,
// 5xx responses or bodies that cannot be decoded.
type UpstreamError struct {
	Status int
	Msg    string
	Err    error
}

func (e UpstreamError) Error() string {
	switch {
	case e.Msg != "" && e.Status > 0:
		return fmt.Sprintf("upstream %d: %s", e.Status, e.Msg)
	case e.Msg != "":
		return "upstream: " + e.Msg
	case e.Err != nil:
		return "upstream: " + e.Err.Error()
	default:
		return "upstream error"
	}
}

func (e UpstreamError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target UpstreamError
	return errors.As(err, &target)
}

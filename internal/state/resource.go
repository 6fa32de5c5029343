// Package state holds per-screen view state. Each holder owns its data
// exclusively: one mutex, one writer at a time, and an operation whose
// context was cancelled never touches the state afterwards. When two
// live operations race, the last response to arrive wins.
package state

import (
	"errors"

	"aptbill/client/internal/api"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

// Resource is a tagged union over the lifecycle of one remote fetch.
// It replaces the loading/error/value field triple so impossible
// combinations (loading with a populated error) cannot be represented.
type Resource[T any] struct {
	phase Phase
	value T
	err   error
}

func Idle[T any]() Resource[T] {
	return Resource[T]{phase: PhaseIdle}
}

func Loading[T any]() Resource[T] {
	return Resource[T]{phase: PhaseLoading}
}

func Ready[T any](v T) Resource[T] {
	return Resource[T]{phase: PhaseReady, value: v}
}

func Failed[T any](err error) Resource[T] {
	return Resource[T]{phase: PhaseFailed, err: err}
}

func (r Resource[T]) Phase() Phase    { return r.phase }
func (r Resource[T]) IsLoading() bool { return r.phase == PhaseLoading }

// Value returns the fetched data when the resource is ready.
func (r Resource[T]) Value() (T, bool) {
	if r.phase != PhaseReady {
		var zero T
		return zero, false
	}
	return r.value, true
}

func (r Resource[T]) Err() error {
	if r.phase != PhaseFailed {
		return nil
	}
	return r.err
}

// Message renders an error for the dismissible banner: a generic line
// for connection failures, the server's own message for HTTP errors.
func Message(action string, err error) string {
	if err == nil {
		return ""
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return "connection error, please try again"
	}

	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return "failed to " + action + ": " + httpErr.Message
	}

	return "failed to " + action + ": " + err.Error()
}

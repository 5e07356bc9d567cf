// Package resource models the state of an asynchronous fetch as seen by a
// screen: still loading, loaded with a payload, or failed with a message.
package resource

import (
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// Status identifies which of the three states a Resource is in.
type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Resource is a tri-state wrapper around a fetch result. Exactly one state is
// active at a time; the zero value is Loading.
type Resource[T any] struct {
	status  Status
	data    T
	message string
}

// Loading returns a Resource with no payload yet.
func Loading[T any]() Resource[T] {
	return Resource[T]{status: StatusLoading}
}

// Success returns a Resource holding data.
func Success[T any](data T) Resource[T] {
	return Resource[T]{status: StatusSuccess, data: data}
}

// Error returns a failed Resource carrying a human-readable message.
func Error[T any](message string) Resource[T] {
	return Resource[T]{status: StatusError, message: message}
}

// From turns a (value, error) pair into a Success or Error resource.
func From[T any](data T, err error) Resource[T] {
	if err != nil {
		return Error[T](err.Error())
	}
	return Success(data)
}

func (r Resource[T]) Status() Status {
	if r.status == "" {
		return StatusLoading
	}
	return r.status
}

func (r Resource[T]) IsLoading() bool { return r.Status() == StatusLoading }
func (r Resource[T]) IsSuccess() bool { return r.status == StatusSuccess }
func (r Resource[T]) IsError() bool   { return r.status == StatusError }

// Data returns the payload and whether the resource is in the success state.
func (r Resource[T]) Data() (T, bool) {
	return r.data, r.status == StatusSuccess
}

// Message returns the error message, or "" unless the resource failed.
func (r Resource[T]) Message() string {
	return r.message
}

type wireResource[T any] struct {
	Status  Status  `json:"status"`
	Data    *T      `json:"data,omitempty"`
	Message *string `json:"message,omitempty"`
}

func (r Resource[T]) MarshalJSON() ([]byte, error) {
	w := wireResource[T]{Status: r.Status()}
	switch r.Status() {
	case StatusSuccess:
		data := r.data
		w.Data = &data
	case StatusError:
		msg := r.message
		w.Message = &msg
	case StatusLoading:
	}
	return json.Marshal(w)
}

func (r *Resource[T]) UnmarshalJSON(b []byte) error {
	var w wireResource[T]
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	switch w.Status {
	case StatusSuccess:
		var data T
		if w.Data != nil {
			data = *w.Data
		}
		*r = Success(data)
	case StatusError:
		msg := ""
		if w.Message != nil {
			msg = *w.Message
		}
		*r = Error[T](msg)
	case StatusLoading:
		*r = Loading[T]()
	default:
		return errors.Errorf("resource: unknown status %q", w.Status)
	}
	return nil
}

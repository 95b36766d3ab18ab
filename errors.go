//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package materials

import (
	"errors"
	"fmt"
)

// NewNotFound builds an error for unknown elements
func NewNotFound(key string, err error) error {
	return &notFound{key: key, err: err}
}

type notFound struct {
	key string
	err error
}

func (e *notFound) Error() string {
	if e.err == nil {
		return fmt.Sprintf("Not Found (%s)", e.key)
	}
	return fmt.Sprintf("Not Found (%s): %v", e.key, e.err)
}

func (e *notFound) Unwrap() error { return e.err }

func (e *notFound) NotFound() string { return e.key }

// NewPreConditionFailed builds an error for aborted I/O on
// requests with conditional expressions
func NewPreConditionFailed(key string, err error) error {
	return &preConditionFailed{key: key, err: err}
}

type preConditionFailed struct {
	key string
	err error
}

func (e *preConditionFailed) Error() string {
	return fmt.Sprintf("Pre Condition Failed (%s)", e.key)
}

func (e *preConditionFailed) Unwrap() error { return e.err }

func (e *preConditionFailed) PreConditionFailed() bool { return true }

// IsNotFound checks the error contract `NotFound() string`
func IsNotFound(err error) bool {
	var e interface{ NotFound() string }
	return errors.As(err, &e)
}

// IsPreConditionFailed checks the error contract `PreConditionFailed() bool`
func IsPreConditionFailed(err error) bool {
	var e interface{ PreConditionFailed() bool }
	return errors.As(err, &e) && e.PreConditionFailed()
}

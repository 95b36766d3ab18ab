//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package materials_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fogfish/it"
	"github.com/fogfish/materials"
)

func TestNotFound(t *testing.T) {
	err := fmt.Errorf("get: %w", materials.NewNotFound("link-01", nil))

	it.Ok(t).
		IfTrue(materials.IsNotFound(err)).
		IfTrue(!materials.IsPreConditionFailed(err)).
		If(err.Error()).Should().Equal("get: Not Found (link-01)")
}

func TestPreConditionFailed(t *testing.T) {
	cause := errors.New("conditional check failed")
	err := fmt.Errorf("put: %w", materials.NewPreConditionFailed("link-01", cause))

	it.Ok(t).
		IfTrue(materials.IsPreConditionFailed(err)).
		IfTrue(!materials.IsNotFound(err)).
		IfTrue(errors.Is(err, cause))
}

func TestUnrelatedError(t *testing.T) {
	err := errors.New("boom")

	it.Ok(t).
		IfTrue(!materials.IsNotFound(err)).
		IfTrue(!materials.IsPreConditionFailed(err))
}

//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package reconciler

import (
	"fmt"

	"github.com/fogfish/faults"
)

const (
	errUndefinedProduct = faults.Type("undefined product reference")
	errUndefinedVendor  = faults.Type("undefined vendor reference")
	errStoreIO          = faults.Type("link store i/o failed")
)

// Kind of reconciliation failure
type Kind int

const (
	UnknownProduct Kind = iota + 1
	UnknownVendor
	StoreWriteFailed
)

func (k Kind) String() string {
	switch k {
	case UnknownProduct:
		return "unknown product"
	case UnknownVendor:
		return "unknown vendor"
	case StoreWriteFailed:
		return "store write failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error of reconciliation with context of relationship
type Error struct {
	Kind        Kind
	ModelNumber string
	VendorName  string
	Err         error
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnknownProduct:
		return fmt.Sprintf("product not found: %s", e.ModelNumber)
	case UnknownVendor:
		return fmt.Sprintf("vendor not found: %s", e.VendorName)
	default:
		return fmt.Sprintf("%s (%s + %s): %v", e.Kind, e.ModelNumber, e.VendorName, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

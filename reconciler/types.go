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
	"strings"

	"github.com/fogfish/materials"
)

// Relationship is desired product to vendor link
type Relationship struct {
	ModelNumber string
	VendorName  string
	Cost        materials.Cost
	IsPrimary   bool
}

func (r Relationship) String() string {
	flag := ""
	if r.IsPrimary {
		flag = " [primary]"
	}
	return fmt.Sprintf("%s -> %s @ %s%s", r.ModelNumber, r.VendorName, r.Cost, flag)
}

// Lookup of known products by model number and vendors by name
type Lookup struct {
	Products map[string]*materials.Product
	Vendors  map[string]*materials.Vendor
}

// NewLookup indexes products and vendors, vendor names are trimmed
func NewLookup(products []*materials.Product, vendors []*materials.Vendor) Lookup {
	lookup := Lookup{
		Products: make(map[string]*materials.Product, len(products)),
		Vendors:  make(map[string]*materials.Vendor, len(vendors)),
	}

	for _, p := range products {
		lookup.Products[p.ModelNumber] = p
	}

	for _, v := range vendors {
		lookup.Vendors[strings.TrimSpace(v.Name)] = v
	}

	return lookup
}

// Status of the relationship after reconciliation
type Status int

const (
	Added Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Added:
		return "added"
	case Skipped:
		return "skipped"
	case Failed:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome of single relationship. Link is defined only if relationship is
// added, Err only if it is skipped or failed.
type Outcome struct {
	Relationship Relationship
	Status       Status
	Link         *materials.ProductVendor
	Err          *Error
}

// Kind of failure, nil Err reports zero Kind
func (o Outcome) Kind() Kind {
	if o.Err == nil {
		return 0
	}
	return o.Err.Kind
}

// Report of reconciliation
type Report struct {
	Added    int
	Skipped  int
	Errors   int
	Outcomes []Outcome
}

func (r *Report) append(o Outcome) {
	switch o.Status {
	case Added:
		r.Added++
	case Skipped:
		r.Skipped++
	case Failed:
		r.Errors++
	}
	r.Outcomes = append(r.Outcomes, o)
}

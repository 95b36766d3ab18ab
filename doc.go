//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

/*
Package materials implements administrative toolkit for materials selection
catalog kept at AWS DynamoDB: vendors, manufacturers, products and
product-vendor relationships.

# Inspiration

The catalog is a set of tables keyed by single `id` attribute. The library
defines Golang struct for each table and a generic collection trait to
access them, so that tooling is written once against the trait and runs
either against DynamoDB or in-memory store.

	type Collection[T Thing] interface {
	  Get(T) (T, error)
	  Put(T, ...Predicate) error
	  Remove(T, ...Predicate) error
	  Patch(T, []Assignment, ...Predicate) (T, error)
	  Scan(...Predicate) ([]T, error)
	  Match(index, ...Predicate) ([]T, error)
	}

# Getting started

Create an I/O endpoint to Dynamo DB table

	db := ddb.Must(ddb.New[*materials.ProductVendor](
	  ddb.WithTable("MaterialsSelection-ProductVendors"),
	))

Lookup primary links of the product using lenses declared next to types

	seq, err := db.Scan(context.Background(),
	  materials.LinkProductID.Eq(productID),
	  materials.LinkIsPrimary.Eq(true),
	)

Apply a partial update, conditional on the current state

	link, err := db.Patch(context.Background(),
	  &materials.ProductVendor{ID: id},
	  []materials.Assignment{materials.LinkIsPrimary.Set(false)},
	  materials.LinkIsPrimary.Eq(true),
	)
	switch {
	case err == nil:
	  // success
	case materials.IsPreConditionFailed(err):
	  // someone else has demoted the link
	default:
	  // other i/o error
	}

The invariant "at most one primary vendor per product" is maintained by
package reconciler.
*/
package materials

//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

//
// The file declares public types of the library
//

package materials

import (
	"context"

	"github.com/fogfish/curie/v2"
)

//-----------------------------------------------------------------------------
//
// Thing
//
//-----------------------------------------------------------------------------

/*
Thing is the most generic item type used by the library to
abstract writable/readable items into storage services.

The interfaces declares anything that have a unique identifier.
All tables of the catalog are keyed by a single hash key.
*/
type Thing interface {
	HashKey() curie.IRI
}

//-----------------------------------------------------------------------------
//
// Storage Reader
//
//-----------------------------------------------------------------------------

/*
Getter defines read by key notation
*/
type Getter[T Thing] interface {
	Get(context.Context, T) (T, error)
}

/*
Scanner defines full table lookup, optionally restricted by equality
predicates joined with AND.
*/
type Scanner[T Thing] interface {
	Scan(context.Context, ...Predicate) ([]T, error)
}

/*
Matcher defines lookup through secondary index. The first predicate
is the index key, remaining predicates filter the result.
*/
type Matcher[T Thing] interface {
	Match(context.Context, string, ...Predicate) ([]T, error)
}

//-----------------------------------------------------------------------------
//
// Storage Writer
//
//-----------------------------------------------------------------------------

/*
Writer defines a generic key-value writer. Predicates are conditions
of the write, the write fails with PreConditionFailed if any of them
does not hold.
*/
type Writer[T Thing] interface {
	Put(context.Context, T, ...Predicate) error
	Remove(context.Context, T, ...Predicate) error
	Patch(context.Context, T, []Assignment, ...Predicate) (T, error)
}

//-----------------------------------------------------------------------------
//
// Storage interface
//
//-----------------------------------------------------------------------------

/*
Collection is a generic trait to access domain objects of a single table.
*/
type Collection[T Thing] interface {
	Getter[T]
	Scanner[T]
	Matcher[T]
	Writer[T]
}

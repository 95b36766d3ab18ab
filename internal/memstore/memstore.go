//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

// Package memstore implements materials.Collection in memory.
//
// Entities are kept in their DynamoDB attribute representation so that
// predicates and assignments produced by lenses are evaluated exactly as
// the table would do it. Scan preserves insertion order.
package memstore

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fogfish/curie/v2"
	"github.com/fogfish/materials"
)

// Op names the collection operation for fault injection
type Op string

const (
	OpGet    Op = "get"
	OpPut    Op = "put"
	OpRemove Op = "remove"
	OpPatch  Op = "patch"
	OpScan   Op = "scan"
	OpMatch  Op = "match"
)

// Fault is injected before the operation is applied, non nil error aborts it.
// The entity is zero value for Scan and Match.
type Fault[T materials.Thing] func(op Op, entity T) error

// Store is in-memory collection
type Store[T materials.Thing] struct {
	mu        sync.Mutex
	keys      []curie.IRI
	items     map[curie.IRI]map[string]types.AttributeValue
	indexes   map[string]struct{}
	fault     Fault[T]
	undefined T
}

var _ materials.Collection[*materials.ProductVendor] = (*Store[*materials.ProductVendor])(nil)

// New creates empty store, Match accepts only given index names
func New[T materials.Thing](indexes ...string) *Store[T] {
	idx := make(map[string]struct{}, len(indexes))
	for _, x := range indexes {
		idx[x] = struct{}{}
	}

	return &Store[T]{
		items:   map[curie.IRI]map[string]types.AttributeValue{},
		indexes: idx,
	}
}

// Inject fault into the store
func (s *Store[T]) Inject(f Fault[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = f
}

// Len is number of entities
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// Values returns all entities in insertion order, faults are not injected
func (s *Store[T]) Values() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, _ := s.filter(nil)
	return seq
}

func (s *Store[T]) inject(op Op, entity T) error {
	if s.fault == nil {
		return nil
	}
	return s.fault(op, entity)
}

func (s *Store[T]) Get(ctx context.Context, key T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.inject(OpGet, key); err != nil {
		return s.undefined, err
	}

	gen, has := s.items[key.HashKey()]
	if !has {
		return s.undefined, materials.NewNotFound(string(key.HashKey()), nil)
	}

	return decode[T](gen)
}

func (s *Store[T]) Put(ctx context.Context, entity T, cond ...materials.Predicate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.inject(OpPut, entity); err != nil {
		return err
	}

	key := entity.HashKey()
	if key == "" {
		return fmt.Errorf("invalid entity of %T, hashkey cannot be empty", entity)
	}

	gen, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return err
	}

	if ok, err := eval(s.items[key], cond); err != nil || !ok {
		if err != nil {
			return err
		}
		return materials.NewPreConditionFailed(string(key), nil)
	}

	if _, has := s.items[key]; !has {
		s.keys = append(s.keys, key)
	}
	s.items[key] = gen

	return nil
}

func (s *Store[T]) Remove(ctx context.Context, key T, cond ...materials.Predicate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.inject(OpRemove, key); err != nil {
		return err
	}

	id := key.HashKey()
	gen, has := s.items[id]
	if ok, err := eval(gen, cond); err != nil || !ok {
		if err != nil {
			return err
		}
		if !has {
			return materials.NewNotFound(string(id), nil)
		}
		return materials.NewPreConditionFailed(string(id), nil)
	}

	if !has {
		return nil
	}

	delete(s.items, id)
	for i, k := range s.keys {
		if k == id {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}

	return nil
}

func (s *Store[T]) Patch(ctx context.Context, key T, set []materials.Assignment, cond ...materials.Predicate) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.inject(OpPatch, key); err != nil {
		return s.undefined, err
	}

	id := key.HashKey()
	gen, has := s.items[id]
	if !has {
		return s.undefined, materials.NewNotFound(string(id), nil)
	}

	if ok, err := eval(gen, cond); err != nil || !ok {
		if err != nil {
			return s.undefined, err
		}
		return s.undefined, materials.NewPreConditionFailed(string(id), nil)
	}

	upd := make(map[string]types.AttributeValue, len(gen)+len(set))
	for k, v := range gen {
		upd[k] = v
	}
	for _, a := range set {
		val, err := attributevalue.Marshal(a.Value)
		if err != nil {
			return s.undefined, err
		}
		upd[a.Attribute] = val
	}

	obj, err := decode[T](upd)
	if err != nil {
		return s.undefined, err
	}
	s.items[id] = upd

	return obj, nil
}

func (s *Store[T]) Scan(ctx context.Context, filter ...materials.Predicate) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.inject(OpScan, s.undefined); err != nil {
		return nil, err
	}

	return s.filter(filter)
}

func (s *Store[T]) Match(ctx context.Context, index string, filter ...materials.Predicate) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.inject(OpMatch, s.undefined); err != nil {
		return nil, err
	}

	if _, has := s.indexes[index]; !has {
		return nil, fmt.Errorf("index %s is not defined", index)
	}

	if len(filter) == 0 || filter[0].Op != materials.OpEq {
		return nil, fmt.Errorf("query of %s requires equality over hash key", index)
	}

	return s.filter(filter)
}

func (s *Store[T]) filter(filter []materials.Predicate) ([]T, error) {
	seq := make([]T, 0)
	for _, key := range s.keys {
		gen := s.items[key]
		ok, err := eval(gen, filter)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		obj, err := decode[T](gen)
		if err != nil {
			return nil, err
		}
		seq = append(seq, obj)
	}

	return seq, nil
}

// eval predicates over item, nil item is absent one
func eval(gen map[string]types.AttributeValue, seq []materials.Predicate) (bool, error) {
	for _, p := range seq {
		val, has := gen[p.Attribute]

		switch p.Op {
		case materials.OpExists:
			if !has {
				return false, nil
			}
		case materials.OpNotExists:
			if has {
				return false, nil
			}
		case materials.OpEq:
			expect, err := attributevalue.Marshal(p.Value)
			if err != nil {
				return false, err
			}
			if !has || !reflect.DeepEqual(expect, val) {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unsupported predicate %s on %s", p.Op, p.Attribute)
		}
	}

	return true, nil
}

func decode[T materials.Thing](gen map[string]types.AttributeValue) (T, error) {
	var entity T
	if err := attributevalue.UnmarshalMap(gen, &entity); err != nil {
		return entity, err
	}
	return entity, nil
}

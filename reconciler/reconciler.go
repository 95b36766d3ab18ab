//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

// Package reconciler maintains product to vendor links so that each
// product has at most one primary vendor.
//
// Links are inserted from desired relationships in the given order. A new
// primary link demotes existing primaries of the product immediately before
// it is inserted, therefore the last primary relationship wins. Demotion is
// compare-and-swap on isPrimary flag and insert is conditional on absence of
// the link identity. Both writes are separate, concurrent writer of the same
// product might still interleave between them.
package reconciler

import (
	"context"
	"time"

	"github.com/fogfish/curie/v2"
	"github.com/fogfish/materials"
	"github.com/fogfish/opts"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Clock of the reconciler
type Clock func() time.Time

// Identity generates identifier of new link
type Identity func() curie.IRI

// Option type to configure the reconciler
type Option = opts.Option[Reconciler]

var (
	// Clock to stamp createdAt and updatedAt
	WithClock = opts.ForType[Reconciler, Clock]()

	// Identity generator of new links, UUID v4 is default one
	WithIdentity = opts.ForType[Reconciler, Identity]()

	// Logger of reconciliation outcomes
	WithLogger = opts.ForType[Reconciler, zerolog.Logger]()

	// Name of global secondary index over productId, primaries are
	// queried from the index instead of table scan if defined. Queries of
	// global secondary index are eventually consistent, a primary inserted
	// just before might be missed by the next demotion. Table scan is
	// strongly consistent.
	WithProductIndex = opts.ForName[Reconciler, string]("index")
)

// Reconciler of product to vendor links
type Reconciler struct {
	links    materials.Collection[*materials.ProductVendor]
	clock    Clock
	identity Identity
	logger   zerolog.Logger
	index    string
}

// New creates reconciler over the collection of links
func New(links materials.Collection[*materials.ProductVendor], opt ...Option) (*Reconciler, error) {
	r := Reconciler{
		links:    links,
		clock:    time.Now,
		identity: func() curie.IRI { return curie.IRI(uuid.NewString()) },
		logger:   zerolog.Nop(),
	}

	if err := opts.Apply(&r, opt); err != nil {
		return nil, err
	}

	return &r, nil
}

// Must constraint for api factory
func Must(r *Reconciler, err error) *Reconciler {
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Reconciler) now() string {
	return materials.Timestamp(r.clock())
}

// primaries of the product
func (r *Reconciler) primaries(ctx context.Context, product curie.IRI) ([]*materials.ProductVendor, error) {
	if r.index != "" {
		return r.links.Match(ctx, r.index,
			materials.LinkProductID.Eq(product),
			materials.LinkIsPrimary.Eq(true),
		)
	}

	return r.links.Scan(ctx,
		materials.LinkProductID.Eq(product),
		materials.LinkIsPrimary.Eq(true),
	)
}

// linksOf the product
func (r *Reconciler) linksOf(ctx context.Context, product curie.IRI) ([]*materials.ProductVendor, error) {
	if r.index != "" {
		return r.links.Match(ctx, r.index, materials.LinkProductID.Eq(product))
	}

	return r.links.Scan(ctx, materials.LinkProductID.Eq(product))
}

// demote every primary link of the product except the given one. The link
// that is not primary anymore, or is gone, is already demoted.
func (r *Reconciler) demote(ctx context.Context, product curie.IRI, except curie.IRI) error {
	seq, err := r.primaries(ctx, product)
	if err != nil {
		return err
	}

	for _, pv := range seq {
		if pv.ID == except {
			continue
		}

		_, err := r.links.Patch(ctx, &materials.ProductVendor{ID: pv.ID},
			[]materials.Assignment{
				materials.LinkIsPrimary.Set(false),
				materials.LinkUpdatedAt.Set(r.now()),
			},
			materials.LinkIsPrimary.Eq(true),
		)
		switch {
		case err == nil:
			r.logger.Debug().Str("link", string(pv.ID)).Str("product", string(product)).Msg("demoted")
		case materials.IsPreConditionFailed(err), materials.IsNotFound(err):
			r.logger.Debug().Str("link", string(pv.ID)).Msg("demoted concurrently")
		default:
			return err
		}
	}

	return nil
}

// insert new link
func (r *Reconciler) insert(ctx context.Context, pv *materials.ProductVendor) error {
	now := r.now()
	pv.ID = r.identity()
	pv.CreatedAt = now
	pv.UpdatedAt = now

	return r.links.Put(ctx, pv, materials.LinkID.NotExists())
}

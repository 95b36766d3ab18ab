//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

// Package seed populates the catalog tables from fixtures.
package seed

import (
	"context"
	"strings"
	"time"

	"github.com/fogfish/curie/v2"
	"github.com/fogfish/materials"
	"github.com/fogfish/materials/reconciler"
	"github.com/fogfish/opts"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Archive keeps snapshots of links before they are cleared
type Archive interface {
	Put(context.Context, *Snapshot) error
}

// Snapshot of links table
type Snapshot struct {
	ID        string                     `json:"id"`
	CreatedAt string                     `json:"createdAt"`
	Links     []*materials.ProductVendor `json:"links"`
}

func (s *Snapshot) HashKey() curie.IRI { return curie.IRI(s.ID) }

// Tally of seeded records
type Tally struct {
	Added   int
	Skipped int
	Failed  int
}

type (
	Vendors       = materials.Collection[*materials.Vendor]
	Manufacturers = materials.Collection[*materials.Manufacturer]
	Products      = materials.Collection[*materials.Product]
	Links         = materials.Collection[*materials.ProductVendor]
)

type Option = opts.Option[Seeder]

var (
	WithVendors       = opts.ForType[Seeder, Vendors]()
	WithManufacturers = opts.ForType[Seeder, Manufacturers]()
	WithProducts      = opts.ForType[Seeder, Products]()
	WithLinks         = opts.ForType[Seeder, Links]()

	// Archive existing links before re-seeding them
	WithArchive = opts.ForType[Seeder, Archive]()

	WithClock    = opts.ForType[Seeder, reconciler.Clock]()
	WithIdentity = opts.ForType[Seeder, reconciler.Identity]()
	WithLogger   = opts.ForType[Seeder, zerolog.Logger]()

	// Name of global secondary index over productId of links table
	WithProductIndex = opts.ForName[Seeder, string]("index")
)

// Seeder of catalog tables
type Seeder struct {
	vendors       Vendors
	manufacturers Manufacturers
	products      Products
	links         Links
	archive       Archive
	clock         reconciler.Clock
	identity      reconciler.Identity
	logger        zerolog.Logger
	index         string
	reconciler    *reconciler.Reconciler
}

// New seeder. Collections are optional, the operation over
// missing collection fails.
func New(opt ...Option) (*Seeder, error) {
	s := Seeder{
		clock:    time.Now,
		identity: func() curie.IRI { return curie.IRI(uuid.NewString()) },
		logger:   zerolog.Nop(),
	}

	if err := opts.Apply(&s, opt); err != nil {
		return nil, err
	}

	if s.links != nil {
		r, err := reconciler.New(s.links,
			reconciler.WithClock(s.clock),
			reconciler.WithIdentity(s.identity),
			reconciler.WithLogger(s.logger),
			reconciler.WithProductIndex(s.index),
		)
		if err != nil {
			return nil, err
		}
		s.reconciler = r
	}

	return &s, nil
}

// Reconciler of links, nil if links are not configured
func (s *Seeder) Reconciler() *reconciler.Reconciler { return s.reconciler }

func (s *Seeder) now() string { return materials.Timestamp(s.clock()) }

// Vendors puts one record per name
func (s *Seeder) Vendors(ctx context.Context, names []string) (int, error) {
	if s.vendors == nil {
		return 0, errUndefinedTable.New(nil)
	}

	for i, name := range names {
		now := s.now()
		vendor := &materials.Vendor{
			ID:        s.identity(),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := s.vendors.Put(ctx, vendor); err != nil {
			return i, errServiceIO.New(err)
		}
		s.logger.Info().Str("id", string(vendor.ID)).Str("name", name).Msg("vendor added")
	}

	return len(names), nil
}

// Manufacturers puts one record per name
func (s *Seeder) Manufacturers(ctx context.Context, names []string) (int, error) {
	if s.manufacturers == nil {
		return 0, errUndefinedTable.New(nil)
	}

	for i, name := range names {
		now := s.now()
		manufacturer := &materials.Manufacturer{
			ID:        s.identity(),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := s.manufacturers.Put(ctx, manufacturer); err != nil {
			return i, errServiceIO.New(err)
		}
		s.logger.Info().Str("id", string(manufacturer.ID)).Str("name", name).Msg("manufacturer added")
	}

	return len(names), nil
}

// Products of each group are put under the manufacturer resolved by its
// trimmed name. The group of unknown manufacturer is skipped.
func (s *Seeder) Products(ctx context.Context, groups []Group) (Tally, error) {
	var tally Tally

	if s.products == nil || s.manufacturers == nil {
		return tally, errUndefinedTable.New(nil)
	}

	seq, err := s.manufacturers.Scan(ctx)
	if err != nil {
		return tally, errServiceIO.New(err)
	}

	known := make(map[string]curie.IRI, len(seq))
	for _, m := range seq {
		known[normalize(m.Name)] = m.ID
	}

	for _, group := range groups {
		id, has := known[normalize(group.Manufacturer)]
		if !has {
			s.logger.Warn().
				Str("manufacturer", group.Manufacturer).
				Int("products", len(group.Items)).
				Msg("manufacturer not found, skipping products")
			tally.Skipped += len(group.Items)
			continue
		}

		for _, item := range group.Items {
			now := s.now()
			product := &materials.Product{
				ID:             s.identity(),
				ManufacturerID: id,
				ModelNumber:    item.ModelNumber,
				Name:           item.Name,
				Description:    item.Description,
				Category:       item.Category,
				CreatedAt:      now,
				UpdatedAt:      now,
			}

			if err := s.products.Put(ctx, product); err != nil {
				s.logger.Error().Err(err).
					Str("manufacturer", group.Manufacturer).
					Str("model", item.ModelNumber).
					Msg("product failed")
				tally.Failed++
				continue
			}

			s.logger.Info().
				Str("manufacturer", group.Manufacturer).
				Str("model", item.ModelNumber).
				Str("name", item.Name).
				Msg("product added")
			tally.Added++
		}
	}

	return tally, nil
}

// LoadLookup of existing products and vendors
func (s *Seeder) LoadLookup(ctx context.Context) (reconciler.Lookup, error) {
	if s.products == nil || s.vendors == nil {
		return reconciler.Lookup{}, errUndefinedTable.New(nil)
	}

	products, err := s.products.Scan(ctx)
	if err != nil {
		return reconciler.Lookup{}, errServiceIO.New(err)
	}

	vendors, err := s.vendors.Scan(ctx)
	if err != nil {
		return reconciler.Lookup{}, errServiceIO.New(err)
	}

	return reconciler.NewLookup(products, vendors), nil
}

// Links replaces existing links with desired relationships. Existing links
// are archived first if archive is configured.
func (s *Seeder) Links(ctx context.Context, desired []reconciler.Relationship) (reconciler.Report, error) {
	if s.reconciler == nil {
		return reconciler.Report{}, errUndefinedTable.New(nil)
	}

	if s.archive != nil {
		if err := s.snapshot(ctx); err != nil {
			return reconciler.Report{}, err
		}
	}

	n, err := s.reconciler.Clear(ctx)
	if err != nil {
		return reconciler.Report{}, errServiceIO.New(err)
	}
	s.logger.Info().Int("links", n).Msg("links cleared")

	lookup, err := s.LoadLookup(ctx)
	if err != nil {
		return reconciler.Report{}, err
	}

	s.logger.Info().
		Int("products", len(lookup.Products)).
		Int("vendors", len(lookup.Vendors)).
		Int("relationships", len(desired)).
		Msg("reconciling links")

	return s.reconciler.Reconcile(ctx, desired, lookup), nil
}

func (s *Seeder) snapshot(ctx context.Context) error {
	seq, err := s.links.Scan(ctx)
	if err != nil {
		return errServiceIO.New(err)
	}

	now := s.clock()
	snap := &Snapshot{
		ID:        "links-" + now.UTC().Format("20060102T150405Z"),
		CreatedAt: materials.Timestamp(now),
		Links:     seq,
	}

	if err := s.archive.Put(ctx, snap); err != nil {
		return errServiceIO.New(err)
	}

	s.logger.Info().Str("snapshot", snap.ID).Int("links", len(seq)).Msg("links archived")
	return nil
}

// ProductURLs patches product url of products with known model number.
// Model numbers absent from the table are skipped, failures are counted.
func (s *Seeder) ProductURLs(ctx context.Context, urls map[string]string) (Tally, error) {
	var tally Tally

	if s.products == nil {
		return tally, errUndefinedTable.New(nil)
	}

	seq, err := s.products.Scan(ctx)
	if err != nil {
		return tally, errServiceIO.New(err)
	}

	seen := make(map[string]struct{}, len(urls))
	for _, product := range seq {
		url, has := urls[product.ModelNumber]
		if !has {
			continue
		}
		seen[product.ModelNumber] = struct{}{}

		_, err := s.products.Patch(ctx, product,
			[]materials.Assignment{
				materials.ProductURL.Set(url),
				materials.ProductUpdatedAt.Set(s.now()),
			},
		)
		if err != nil {
			s.logger.Error().Err(err).Str("model", product.ModelNumber).Msg("product url failed")
			tally.Failed++
			continue
		}

		s.logger.Info().Str("model", product.ModelNumber).Str("url", url).Msg("product url updated")
		tally.Added++
	}

	for model := range urls {
		if _, has := seen[model]; !has {
			s.logger.Warn().Str("model", model).Msg("product not found")
			tally.Skipped++
		}
	}

	return tally, nil
}

// All seeds every table from the catalog
func (s *Seeder) All(ctx context.Context, c *Catalog) (reconciler.Report, error) {
	if _, err := s.Vendors(ctx, c.Vendors); err != nil {
		return reconciler.Report{}, err
	}

	if _, err := s.Manufacturers(ctx, c.Manufacturers); err != nil {
		return reconciler.Report{}, err
	}

	if _, err := s.Products(ctx, c.Products); err != nil {
		return reconciler.Report{}, err
	}

	if _, err := s.ProductURLs(ctx, c.URLs); err != nil {
		return reconciler.Report{}, err
	}

	return s.Links(ctx, c.Relationships())
}

func normalize(name string) string { return strings.TrimSpace(name) }

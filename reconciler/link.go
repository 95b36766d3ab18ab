//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package reconciler

import (
	"context"

	"github.com/fogfish/curie/v2"
	"github.com/fogfish/materials"
)

// Attachment of vendor to product. The link becomes primary if the product
// has no links yet, unless IsPrimary is defined explicitly.
type Attachment struct {
	ProductID curie.IRI
	VendorID  curie.IRI
	Cost      materials.Cost
	SKU       string
	IsPrimary *bool
}

// Attach vendor to product
func (r *Reconciler) Attach(ctx context.Context, a Attachment) (*materials.ProductVendor, error) {
	if a.ProductID == "" {
		return nil, errUndefinedProduct.New(nil)
	}

	if a.VendorID == "" {
		return nil, errUndefinedVendor.New(nil)
	}

	primary := false
	if a.IsPrimary != nil {
		primary = *a.IsPrimary
	} else {
		seq, err := r.linksOf(ctx, a.ProductID)
		if err != nil {
			return nil, errStoreIO.New(err)
		}
		primary = len(seq) == 0
	}

	if primary {
		if err := r.demote(ctx, a.ProductID, ""); err != nil {
			return nil, errStoreIO.New(err)
		}
	}

	link := &materials.ProductVendor{
		ProductID: a.ProductID,
		VendorID:  a.VendorID,
		Cost:      a.Cost,
		SKU:       a.SKU,
		IsPrimary: primary,
	}
	if err := r.insert(ctx, link); err != nil {
		return nil, errStoreIO.New(err)
	}

	r.logger.Info().
		Str("product", string(link.ProductID)).
		Str("vendor", string(link.VendorID)).
		Str("link", string(link.ID)).
		Bool("primary", link.IsPrimary).
		Msg("attached")

	return link, nil
}

// Promote link to be the only primary of its product
func (r *Reconciler) Promote(ctx context.Context, id curie.IRI) (*materials.ProductVendor, error) {
	link, err := r.links.Get(ctx, &materials.ProductVendor{ID: id})
	if err != nil {
		return nil, err
	}

	if err := r.demote(ctx, link.ProductID, link.ID); err != nil {
		return nil, errStoreIO.New(err)
	}

	if link.IsPrimary {
		return link, nil
	}

	val, err := r.links.Patch(ctx, &materials.ProductVendor{ID: link.ID},
		[]materials.Assignment{
			materials.LinkIsPrimary.Set(true),
			materials.LinkUpdatedAt.Set(r.now()),
		},
	)
	if err != nil {
		return nil, errStoreIO.New(err)
	}

	r.logger.Info().
		Str("product", string(val.ProductID)).
		Str("link", string(val.ID)).
		Msg("promoted")

	return val, nil
}

// Clear removes every link, returns number of removed links
func (r *Reconciler) Clear(ctx context.Context) (int, error) {
	seq, err := r.links.Scan(ctx)
	if err != nil {
		return 0, err
	}

	for i, pv := range seq {
		if err := r.links.Remove(ctx, &materials.ProductVendor{ID: pv.ID}); err != nil {
			return i, err
		}
		r.logger.Debug().Str("link", string(pv.ID)).Msg("deleted")
	}

	r.logger.Info().Int("count", len(seq)).Msg("cleared")
	return len(seq), nil
}

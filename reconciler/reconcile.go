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

	"github.com/fogfish/materials"
)

// Reconcile inserts links for desired relationships, strictly in order.
// Failures are captured per relationship, the batch always completes.
func (r *Reconciler) Reconcile(ctx context.Context, desired []Relationship, lookup Lookup) Report {
	report := Report{Outcomes: make([]Outcome, 0, len(desired))}

	for _, rel := range desired {
		outcome := r.reconcile(ctx, rel, lookup)
		r.log(outcome)
		report.append(outcome)
	}

	r.logger.Info().
		Int("added", report.Added).
		Int("skipped", report.Skipped).
		Int("errors", report.Errors).
		Msg("reconciled")

	return report
}

func (r *Reconciler) reconcile(ctx context.Context, rel Relationship, lookup Lookup) Outcome {
	product, has := lookup.Products[rel.ModelNumber]
	if !has || product == nil {
		return skip(rel, UnknownProduct)
	}

	vendor, has := lookup.Vendors[rel.VendorName]
	if !has || vendor == nil {
		return skip(rel, UnknownVendor)
	}

	if rel.IsPrimary {
		if err := r.demote(ctx, product.ID, ""); err != nil {
			return fail(rel, err)
		}
	}

	link := &materials.ProductVendor{
		ProductID: product.ID,
		VendorID:  vendor.ID,
		Cost:      rel.Cost,
		IsPrimary: rel.IsPrimary,
	}
	if err := r.insert(ctx, link); err != nil {
		return fail(rel, err)
	}

	return Outcome{Relationship: rel, Status: Added, Link: link}
}

func skip(rel Relationship, kind Kind) Outcome {
	return Outcome{
		Relationship: rel,
		Status:       Skipped,
		Err:          &Error{Kind: kind, ModelNumber: rel.ModelNumber, VendorName: rel.VendorName},
	}
}

func fail(rel Relationship, err error) Outcome {
	return Outcome{
		Relationship: rel,
		Status:       Failed,
		Err: &Error{
			Kind:        StoreWriteFailed,
			ModelNumber: rel.ModelNumber,
			VendorName:  rel.VendorName,
			Err:         err,
		},
	}
}

func (r *Reconciler) log(o Outcome) {
	switch o.Status {
	case Added:
		r.logger.Info().
			Str("model", o.Relationship.ModelNumber).
			Str("vendor", o.Relationship.VendorName).
			Str("cost", o.Relationship.Cost.String()).
			Bool("primary", o.Relationship.IsPrimary).
			Str("link", string(o.Link.ID)).
			Msg("added")
	case Skipped:
		r.logger.Warn().
			Str("model", o.Relationship.ModelNumber).
			Str("vendor", o.Relationship.VendorName).
			Stringer("kind", o.Err.Kind).
			Msg("skipped")
	case Failed:
		r.logger.Error().
			Err(o.Err.Err).
			Str("model", o.Relationship.ModelNumber).
			Str("vendor", o.Relationship.VendorName).
			Msg("failed")
	}
}

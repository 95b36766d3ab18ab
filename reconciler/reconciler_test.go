//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package reconciler_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fogfish/curie/v2"
	"github.com/fogfish/it/v2"
	"github.com/fogfish/materials"
	"github.com/fogfish/materials/internal/memstore"
	"github.com/fogfish/materials/reconciler"
)

func clock() time.Time {
	return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
}

func sequence() reconciler.Identity {
	n := 0
	return func() curie.IRI {
		n++
		return curie.IRI(fmt.Sprintf("link-%02d", n))
	}
}

func lookup() reconciler.Lookup {
	return reconciler.NewLookup(
		[]*materials.Product{
			{ID: "p-toilet", ModelNumber: "K-30810-0"},
			{ID: "p-faucet", ModelNumber: "M-7594SRS"},
			{ID: "p-mirror", ModelNumber: "K-26050-BLG"},
		},
		[]*materials.Vendor{
			{ID: "v-ferguson", Name: "Ferguson"},
			{ID: "v-homedepot", Name: " Home Depot "},
			{ID: "v-amazon", Name: "Amazon"},
		},
	)
}

func rel(model, vendor, cost string, primary bool) reconciler.Relationship {
	return reconciler.Relationship{
		ModelNumber: model,
		VendorName:  vendor,
		Cost:        materials.MustCost(cost),
		IsPrimary:   primary,
	}
}

func newReconciler(db materials.Collection[*materials.ProductVendor], opt ...reconciler.Option) *reconciler.Reconciler {
	opt = append([]reconciler.Option{
		reconciler.WithClock(clock),
		reconciler.WithIdentity(sequence()),
	}, opt...)

	return reconciler.Must(reconciler.New(db, opt...))
}

func primariesOf(db *memstore.Store[*materials.ProductVendor], product curie.IRI) []*materials.ProductVendor {
	seq := make([]*materials.ProductVendor, 0)
	for _, pv := range db.Values() {
		if pv.ProductID == product && pv.IsPrimary {
			seq = append(seq, pv)
		}
	}
	return seq
}

func linksOf(db *memstore.Store[*materials.ProductVendor], product curie.IRI) []*materials.ProductVendor {
	seq := make([]*materials.ProductVendor, 0)
	for _, pv := range db.Values() {
		if pv.ProductID == product {
			seq = append(seq, pv)
		}
	}
	return seq
}

func TestReconcileScenario(t *testing.T) {
	db := memstore.New[*materials.ProductVendor]()
	r := newReconciler(db)

	report := r.Reconcile(context.Background(),
		[]reconciler.Relationship{
			rel("K-30810-0", "Ferguson", "425.00", true),
			rel("K-30810-0", "Home Depot", "399.00", false),
		},
		lookup(),
	)

	seq := db.Values()
	it.Then(t).
		Should(it.Equal(report.Added, 2)).
		Should(it.Equal(report.Skipped, 0)).
		Should(it.Equal(report.Errors, 0)).
		Should(it.Equal(len(report.Outcomes), 2)).
		Should(it.Equal(len(seq), 2)).
		Should(it.Equal(seq[0].VendorID, "v-ferguson")).
		Should(it.True(seq[0].IsPrimary)).
		Should(it.True(seq[0].Cost.Equal(materials.MustCost("425")))).
		Should(it.Equal(seq[0].CreatedAt, "2025-03-14T10:00:00.000Z")).
		Should(it.Equal(seq[0].UpdatedAt, seq[0].CreatedAt)).
		Should(it.Equal(seq[1].VendorID, "v-homedepot")).
		Should(it.True(!seq[1].IsPrimary)).
		Should(it.True(seq[1].Cost.Equal(materials.MustCost("399"))))
}

func TestReconcileLastPrimaryWins(t *testing.T) {
	clocks := []time.Time{clock(), clock().Add(time.Minute), clock().Add(2 * time.Minute)}
	at := 0
	tick := func() time.Time {
		ts := clocks[min(at, len(clocks)-1)]
		at++
		return ts
	}

	db := memstore.New[*materials.ProductVendor]()
	r := newReconciler(db, reconciler.WithClock(tick))

	report := r.Reconcile(context.Background(),
		[]reconciler.Relationship{
			rel("K-30810-0", "Ferguson", "425.00", true),
			rel("K-30810-0", "Amazon", "380.00", true),
		},
		lookup(),
	)

	primary := primariesOf(db, "p-toilet")
	ferguson, _ := db.Get(context.Background(), report.Outcomes[0].Link)

	it.Then(t).
		Should(it.Equal(report.Added, 2)).
		Should(it.Equal(len(primary), 1)).
		Should(it.Equal(primary[0].VendorID, "v-amazon")).
		Should(it.True(!ferguson.IsPrimary)).
		Should(it.True(ferguson.UpdatedAt != ferguson.CreatedAt))
}

func TestReconcileUnknownReference(t *testing.T) {
	db := memstore.New[*materials.ProductVendor]()
	r := newReconciler(db)

	report := r.Reconcile(context.Background(),
		[]reconciler.Relationship{
			rel("X-000", "Ferguson", "1.00", true),
			rel("K-30810-0", "Unknown Supply", "1.00", true),
			rel("M-7594SRS", "Amazon", "265.00", false),
		},
		lookup(),
	)

	var e *reconciler.Error
	it.Then(t).
		Should(it.Equal(report.Added, 1)).
		Should(it.Equal(report.Skipped, 2)).
		Should(it.Equal(report.Errors, 0)).
		Should(it.Equal(db.Len(), 1)).
		Should(it.Equal(report.Outcomes[0].Status, reconciler.Skipped)).
		Should(it.Equal(report.Outcomes[0].Kind(), reconciler.UnknownProduct)).
		Should(it.Equal(report.Outcomes[1].Kind(), reconciler.UnknownVendor)).
		Should(it.Equal(report.Outcomes[2].Status, reconciler.Added)).
		Should(it.True(errors.As(report.Outcomes[1].Err, &e))).
		Should(it.Equal(e.VendorName, "Unknown Supply"))
}

func TestReconcileZeroVendorProduct(t *testing.T) {
	db := memstore.New[*materials.ProductVendor]()
	r := newReconciler(db)

	report := r.Reconcile(context.Background(),
		[]reconciler.Relationship{
			rel("K-30810-0", "Ferguson", "425.00", true),
		},
		lookup(),
	)

	it.Then(t).
		Should(it.Equal(report.Errors, 0)).
		Should(it.Equal(len(linksOf(db, "p-mirror")), 0))
}

func TestReconcileTwice(t *testing.T) {
	desired := []reconciler.Relationship{
		rel("K-30810-0", "Ferguson", "425.00", true),
		rel("K-30810-0", "Home Depot", "399.00", false),
		rel("M-7594SRS", "Ferguson", "299.00", true),
		rel("M-7594SRS", "Amazon", "265.00", false),
	}

	db := memstore.New[*materials.ProductVendor]()
	r := newReconciler(db)

	first := r.Reconcile(context.Background(), desired, lookup())
	again := r.Reconcile(context.Background(), desired, lookup())

	it.Then(t).
		Should(it.Equal(first.Added, 4)).
		Should(it.Equal(again.Added, 4)).
		Should(it.Equal(db.Len(), 8)).
		Should(it.Equal(len(primariesOf(db, "p-toilet")), 1)).
		Should(it.Equal(len(primariesOf(db, "p-faucet")), 1))
}

func TestReconcileDemotesDirtyData(t *testing.T) {
	db := memstore.New[*materials.ProductVendor]()
	for _, id := range []curie.IRI{"dirty-1", "dirty-2"} {
		db.Put(context.Background(), &materials.ProductVendor{
			ID:        id,
			ProductID: "p-toilet",
			VendorID:  "v-amazon",
			Cost:      materials.MustCost("1"),
			IsPrimary: true,
		})
	}
	r := newReconciler(db)

	report := r.Reconcile(context.Background(),
		[]reconciler.Relationship{rel("K-30810-0", "Ferguson", "425.00", true)},
		lookup(),
	)

	primary := primariesOf(db, "p-toilet")
	it.Then(t).
		Should(it.Equal(report.Added, 1)).
		Should(it.Equal(len(primary), 1)).
		Should(it.Equal(primary[0].VendorID, "v-ferguson"))
}

func TestReconcileWithProductIndex(t *testing.T) {
	db := memstore.New[*materials.ProductVendor]("ProductIdIndex")
	r := newReconciler(db, reconciler.WithProductIndex("ProductIdIndex"))

	report := r.Reconcile(context.Background(),
		[]reconciler.Relationship{
			rel("K-30810-0", "Ferguson", "425.00", true),
			rel("K-30810-0", "Amazon", "380.00", true),
		},
		lookup(),
	)

	primary := primariesOf(db, "p-toilet")
	it.Then(t).
		Should(it.Equal(report.Errors, 0)).
		Should(it.Equal(len(primary), 1)).
		Should(it.Equal(primary[0].VendorID, "v-amazon"))
}

func TestReconcileStoreFailure(t *testing.T) {
	fault := errors.New("store unavailable")
	db := memstore.New[*materials.ProductVendor]()
	db.Inject(func(op memstore.Op, pv *materials.ProductVendor) error {
		if op == memstore.OpPut && pv.ProductID == "p-toilet" {
			return fault
		}
		return nil
	})
	r := newReconciler(db)

	report := r.Reconcile(context.Background(),
		[]reconciler.Relationship{
			rel("K-30810-0", "Ferguson", "425.00", true),
			rel("M-7594SRS", "Ferguson", "299.00", true),
		},
		lookup(),
	)

	it.Then(t).
		Should(it.Equal(report.Added, 1)).
		Should(it.Equal(report.Errors, 1)).
		Should(it.Equal(report.Outcomes[0].Status, reconciler.Failed)).
		Should(it.Equal(report.Outcomes[0].Kind(), reconciler.StoreWriteFailed)).
		Should(it.True(errors.Is(report.Outcomes[0].Err, fault))).
		Should(it.Equal(db.Len(), 1))
}

func TestReconcileScanFailure(t *testing.T) {
	db := memstore.New[*materials.ProductVendor]()
	db.Inject(func(op memstore.Op, pv *materials.ProductVendor) error {
		if op == memstore.OpScan {
			return errors.New("scan failed")
		}
		return nil
	})
	r := newReconciler(db)

	report := r.Reconcile(context.Background(),
		[]reconciler.Relationship{
			rel("K-30810-0", "Ferguson", "425.00", true),
			rel("K-30810-0", "Home Depot", "399.00", false),
		},
		lookup(),
	)

	it.Then(t).
		Should(it.Equal(report.Errors, 1)).
		Should(it.Equal(report.Added, 1)).
		Should(it.Equal(db.Len(), 1))
}

func TestAttach(t *testing.T) {
	db := memstore.New[*materials.ProductVendor]()
	r := newReconciler(db)
	ctx := context.Background()

	first, err1 := r.Attach(ctx, reconciler.Attachment{
		ProductID: "p-toilet", VendorID: "v-ferguson", Cost: materials.MustCost("425"),
	})
	second, err2 := r.Attach(ctx, reconciler.Attachment{
		ProductID: "p-toilet", VendorID: "v-amazon", Cost: materials.MustCost("380"), SKU: "B00X",
	})

	it.Then(t).
		Should(it.Nil(err1)).
		Should(it.Nil(err2)).
		Should(it.True(first.IsPrimary)).
		Should(it.True(!second.IsPrimary)).
		Should(it.Equal(second.SKU, "B00X")).
		Should(it.Equal(len(primariesOf(db, "p-toilet")), 1))
}

func TestAttachExplicitPrimary(t *testing.T) {
	db := memstore.New[*materials.ProductVendor]()
	r := newReconciler(db)
	ctx := context.Background()
	yes := true

	r.Attach(ctx, reconciler.Attachment{ProductID: "p-toilet", VendorID: "v-ferguson"})
	link, err := r.Attach(ctx, reconciler.Attachment{ProductID: "p-toilet", VendorID: "v-amazon", IsPrimary: &yes})

	primary := primariesOf(db, "p-toilet")
	it.Then(t).
		Should(it.Nil(err)).
		Should(it.Equal(len(primary), 1)).
		Should(it.Equal(primary[0].ID, link.ID))
}

func TestAttachUndefined(t *testing.T) {
	r := newReconciler(memstore.New[*materials.ProductVendor]())

	_, err := r.Attach(context.Background(), reconciler.Attachment{VendorID: "v-amazon"})

	it.Then(t).Should(it.True(err != nil))
}

func TestPromote(t *testing.T) {
	db := memstore.New[*materials.ProductVendor]()
	r := newReconciler(db)
	ctx := context.Background()

	r.Reconcile(ctx,
		[]reconciler.Relationship{
			rel("K-30810-0", "Ferguson", "425.00", true),
			rel("K-30810-0", "Home Depot", "399.00", false),
			rel("K-30810-0", "Amazon", "380.00", false),
		},
		lookup(),
	)

	link, err := r.Promote(ctx, "link-03")
	again, err2 := r.Promote(ctx, "link-03")
	_, nf := r.Promote(ctx, "link-99")

	primary := primariesOf(db, "p-toilet")
	it.Then(t).
		Should(it.Nil(err)).
		Should(it.Nil(err2)).
		Should(it.True(link.IsPrimary)).
		Should(it.True(again.IsPrimary)).
		Should(it.Equal(len(primary), 1)).
		Should(it.Equal(primary[0].ID, "link-03")).
		Should(it.True(materials.IsNotFound(nf)))
}

func TestClear(t *testing.T) {
	db := memstore.New[*materials.ProductVendor]()
	r := newReconciler(db)
	ctx := context.Background()

	r.Reconcile(ctx,
		[]reconciler.Relationship{
			rel("K-30810-0", "Ferguson", "425.00", true),
			rel("M-7594SRS", "Amazon", "265.00", false),
		},
		lookup(),
	)

	n, err := r.Clear(ctx)

	it.Then(t).
		Should(it.Nil(err)).
		Should(it.Equal(n, 2)).
		Should(it.Equal(db.Len(), 0))
}

func withPrimary(t *testing.T, db *memstore.Store[*materials.ProductVendor]) {
	t.Helper()

	err := db.Put(context.Background(), &materials.ProductVendor{
		ID:        "link-old",
		ProductID: "p-toilet",
		VendorID:  "v-homedepot",
		Cost:      materials.MustCost("399.00"),
		IsPrimary: true,
	})
	it.Then(t).Should(it.Nil(err))
}

func TestReconcileDemotedConcurrently(t *testing.T) {
	db := memstore.New[*materials.ProductVendor]()
	withPrimary(t, db)
	db.Inject(func(op memstore.Op, pv *materials.ProductVendor) error {
		if op == memstore.OpPatch {
			return materials.NewPreConditionFailed(string(pv.ID), nil)
		}
		return nil
	})
	r := newReconciler(db)

	report := r.Reconcile(context.Background(),
		[]reconciler.Relationship{
			rel("K-30810-0", "Ferguson", "425.00", true),
		},
		lookup(),
	)

	it.Then(t).
		Should(it.Equal(report.Added, 1)).
		Should(it.Equal(report.Errors, 0)).
		Should(it.Equal(report.Outcomes[0].Status, reconciler.Added)).
		Should(it.Equal(db.Len(), 2)).
		Should(it.True(report.Outcomes[0].Link.IsPrimary))
}

func TestReconcileDemoteFailure(t *testing.T) {
	fault := errors.New("patch failed")
	db := memstore.New[*materials.ProductVendor]()
	withPrimary(t, db)
	db.Inject(func(op memstore.Op, pv *materials.ProductVendor) error {
		if op == memstore.OpPatch {
			return fault
		}
		return nil
	})
	r := newReconciler(db)

	report := r.Reconcile(context.Background(),
		[]reconciler.Relationship{
			rel("K-30810-0", "Ferguson", "425.00", true),
			rel("M-7594SRS", "Amazon", "265.00", false),
		},
		lookup(),
	)

	toilet := linksOf(db, "p-toilet")
	it.Then(t).
		Should(it.Equal(report.Added, 1)).
		Should(it.Equal(report.Errors, 1)).
		Should(it.Equal(report.Outcomes[0].Status, reconciler.Failed)).
		Should(it.Equal(report.Outcomes[0].Kind(), reconciler.StoreWriteFailed)).
		Should(it.True(errors.Is(report.Outcomes[0].Err, fault))).
		Should(it.Equal(report.Outcomes[1].Status, reconciler.Added)).
		Should(it.Equal(len(toilet), 1)).
		Should(it.Equal(toilet[0].ID, "link-old")).
		Should(it.True(toilet[0].IsPrimary)).
		Should(it.Equal(db.Len(), 2))
}

func TestRelationshipString(t *testing.T) {
	it.Then(t).
		Should(it.Equal(rel("K-30810-0", "Ferguson", "425", true).String(), "K-30810-0 -> Ferguson @ 425.00 [primary]")).
		Should(it.Equal(rel("K-30810-0", "Home Depot", "399", false).String(), "K-30810-0 -> Home Depot @ 399.00"))
}

//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package main

import (
	"errors"

	"github.com/fogfish/curie/v2"
	"github.com/spf13/cobra"

	"github.com/fogfish/materials"
	"github.com/fogfish/materials/reconciler"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "maintain product to vendor links",
}

var (
	attachProduct string
	attachVendor  string
	attachCost    string
	attachSKU     string
	attachPrimary bool
)

var linksAttachCmd = &cobra.Command{
	Use:   "attach",
	Short: "link product to vendor",
	Long: `Links product to vendor at the given cost. The link becomes primary
if --primary is set, or if the product has no links yet. Other primary
links of the product are demoted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cost, err := materials.NewCost(attachCost)
		if err != nil {
			return err
		}

		r, err := linksReconciler(cmd)
		if err != nil {
			return err
		}

		a := reconciler.Attachment{
			ProductID: curie.IRI(attachProduct),
			VendorID:  curie.IRI(attachVendor),
			Cost:      cost,
			SKU:       attachSKU,
		}
		if cmd.Flags().Changed("primary") {
			a.IsPrimary = &attachPrimary
		}

		pv, err := r.Attach(cmd.Context(), a)
		if err != nil {
			return err
		}

		logger.Info().
			Str("id", string(pv.ID)).
			Str("product", string(pv.ProductID)).
			Str("vendor", string(pv.VendorID)).
			Bool("primary", pv.IsPrimary).
			Msg("linked")
		return nil
	},
}

var linksPromoteCmd = &cobra.Command{
	Use:   "promote LINK_ID",
	Short: "make the link primary vendor of its product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := linksReconciler(cmd)
		if err != nil {
			return err
		}

		pv, err := r.Promote(cmd.Context(), curie.IRI(args[0]))
		if err != nil {
			return err
		}

		logger.Info().
			Str("id", string(pv.ID)).
			Str("product", string(pv.ProductID)).
			Msg("promoted")
		return nil
	},
}

func linksReconciler(cmd *cobra.Command) (*reconciler.Reconciler, error) {
	s, err := newSeeder(cmd.Context())
	if err != nil {
		return nil, err
	}

	r := s.Reconciler()
	if r == nil {
		return nil, errors.New("links table is not configured")
	}

	return r, nil
}

func init() {
	flags := linksAttachCmd.Flags()
	flags.StringVar(&attachProduct, "product", "", "product id")
	flags.StringVar(&attachVendor, "vendor", "", "vendor id")
	flags.StringVar(&attachCost, "cost", "", "unit cost, decimal")
	flags.StringVar(&attachSKU, "sku", "", "vendor stock keeping unit")
	flags.BoolVar(&attachPrimary, "primary", false, "make the link primary")

	for _, key := range []string{"product", "vendor", "cost"} {
		if err := linksAttachCmd.MarkFlagRequired(key); err != nil {
			panic(err)
		}
	}

	linksCmd.AddCommand(linksAttachCmd, linksPromoteCmd)
}

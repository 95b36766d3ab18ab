//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fogfish/materials/reconciler"
	"github.com/fogfish/materials/seed"
)

var catalogFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "seed catalog tables from fixtures",
}

func init() {
	seedCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "catalog YAML file (default is embedded catalog)")

	seedCmd.AddCommand(
		seedStep("vendors", "seed vendors", func(cmd *cobra.Command, s *seed.Seeder, c *seed.Catalog) error {
			n, err := s.Vendors(cmd.Context(), c.Vendors)
			logger.Info().Int("added", n).Msg("vendors seeded")
			return err
		}),
		seedStep("manufacturers", "seed manufacturers", func(cmd *cobra.Command, s *seed.Seeder, c *seed.Catalog) error {
			n, err := s.Manufacturers(cmd.Context(), c.Manufacturers)
			logger.Info().Int("added", n).Msg("manufacturers seeded")
			return err
		}),
		seedStep("products", "seed products of known manufacturers", func(cmd *cobra.Command, s *seed.Seeder, c *seed.Catalog) error {
			tally, err := s.Products(cmd.Context(), c.Products)
			if err != nil {
				return err
			}
			logTally("products seeded", tally)
			return nil
		}),
		seedStep("links", "replace product to vendor links", func(cmd *cobra.Command, s *seed.Seeder, c *seed.Catalog) error {
			report, err := s.Links(cmd.Context(), c.Relationships())
			if err != nil {
				return err
			}
			return logReport(report)
		}),
		seedStep("all", "seed every table", func(cmd *cobra.Command, s *seed.Seeder, c *seed.Catalog) error {
			report, err := s.All(cmd.Context(), c)
			if err != nil {
				return err
			}
			return logReport(report)
		}),
	)
}

func seedStep(
	use, short string,
	f func(*cobra.Command, *seed.Seeder, *seed.Catalog) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadCatalog(catalogFile)
			if err != nil {
				return err
			}

			s, err := newSeeder(cmd.Context())
			if err != nil {
				return err
			}

			return f(cmd, s, c)
		},
	}
}

func logTally(msg string, tally seed.Tally) {
	logger.Info().
		Int("added", tally.Added).
		Int("skipped", tally.Skipped).
		Int("failed", tally.Failed).
		Msg(msg)
}

func logReport(report reconciler.Report) error {
	for _, o := range report.Outcomes {
		if o.Status == reconciler.Skipped {
			logger.Warn().Str("relationship", o.Relationship.String()).Str("reason", o.Kind().String()).Msg("not linked")
		}
	}

	if report.Errors > 0 {
		return fmt.Errorf("%d of %d relationships failed", report.Errors, len(report.Outcomes))
	}

	return nil
}

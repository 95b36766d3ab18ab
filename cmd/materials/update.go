//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package main

import (
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "bulk update of catalog records",
}

var updateURLsCmd = &cobra.Command{
	Use:   "urls",
	Short: "set product urls by model number",
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

		tally, err := s.ProductURLs(cmd.Context(), c.URLs)
		if err != nil {
			return err
		}

		logTally("product urls updated", tally)
		return nil
	},
}

func init() {
	updateCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "catalog YAML file (default is embedded catalog)")
	updateCmd.AddCommand(updateURLsCmd)
}

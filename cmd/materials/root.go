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
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fogfish/materials/internal/logging"
)

var logger = logging.New(logging.Config{Level: "info"})

var rootCmd = &cobra.Command{
	Use:   "materials",
	Short: "materials selection catalog",
	Long: `Seeds vendors, manufacturers and products of materials selection
catalog, reconciles product to vendor links and maintains primary vendor
of each product.

Configuration is read from flags, MATERIALS_* environment variables
and .env files.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("region", "us-east-1", "AWS region")
	flags.String("table-prefix", "MaterialsSelection-", "prefix of DynamoDB tables")
	flags.String("archive-bucket", "", "S3 bucket to archive links before re-seeding")
	flags.String("product-index", "", "global secondary index of links over productId")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.String("log-format", "auto", "log format: auto, console, json")

	for _, key := range []string{"region", "table-prefix", "archive-bucket", "product-index", "log-level", "log-format"} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", key, err))
		}
	}

	rootCmd.AddCommand(seedCmd, updateCmd, linksCmd)
}

func initConfig() {
	// .env.local overrides .env
	for _, file := range []string{".env", ".env.local"} {
		_ = godotenv.Load(file)
	}

	viper.SetEnvPrefix("MATERIALS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger = logging.New(logging.Config{
		Level:  viper.GetString("log-level"),
		Format: viper.GetString("log-format"),
	})

	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

	logger.Debug().
		Str("region", viper.GetString("region")).
		Str("table-prefix", viper.GetString("table-prefix")).
		Msg("configured")

	return nil
}

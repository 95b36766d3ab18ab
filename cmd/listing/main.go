//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

// The lambda function lists a catalog table. TABLE names the table,
// LISTING_KEY names the collection: vendors, manufacturers, products,
// productVendors or projects.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog"

	"github.com/fogfish/materials"
	"github.com/fogfish/materials/internal/logging"
	"github.com/fogfish/materials/listing"
	"github.com/fogfish/materials/service/ddb"
)

func main() {
	logger := logging.New(logging.Config{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: "json",
	})

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(getEnvOrDefault("AWS_REGION", "us-east-1")),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("aws config failed")
	}

	handler, err := handlerOf(cfg, os.Getenv("TABLE"), getEnvOrDefault("LISTING_KEY", "productVendors"), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("listing is not configured")
	}

	lambda.Start(handler)
}

func handlerOf(cfg aws.Config, table, key string, logger zerolog.Logger) (listing.Handler, error) {
	switch key {
	case "vendors":
		return handler[*materials.Vendor](cfg, table, key, logger)
	case "manufacturers":
		return handler[*materials.Manufacturer](cfg, table, key, logger)
	case "products":
		return handler[*materials.Product](cfg, table, key, logger)
	case "productVendors":
		return handler[*materials.ProductVendor](cfg, table, key, logger)
	case "projects":
		return handler[*materials.Project](cfg, table, key, logger)
	default:
		return nil, fmt.Errorf("unknown listing key %q", key)
	}
}

func handler[T materials.Thing](cfg aws.Config, table, key string, logger zerolog.Logger) (listing.Handler, error) {
	db, err := ddb.New[T](ddb.WithTable(table), ddb.WithConfig(cfg))
	if err != nil {
		return nil, err
	}

	return listing.New[T](key, db, logger), nil
}

func getEnvOrDefault(key, value string) string {
	if x := os.Getenv(key); x != "" {
		return x
	}
	return value
}

//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package main

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/viper"

	"github.com/fogfish/materials"
	"github.com/fogfish/materials/internal/logging"
	"github.com/fogfish/materials/seed"
	"github.com/fogfish/materials/service/ddb"
	"github.com/fogfish/materials/service/s3"
)

// Config of the command, resolved from flags, environment and .env files
type Config struct {
	Region        string
	TablePrefix   string
	ArchiveBucket string
	ProductIndex  string
}

func loadConfig() Config {
	return Config{
		Region:        viper.GetString("region"),
		TablePrefix:   viper.GetString("table-prefix"),
		ArchiveBucket: viper.GetString("archive-bucket"),
		ProductIndex:  viper.GetString("product-index"),
	}
}

func (c Config) Table(name string) string { return c.TablePrefix + name }

func newTable[T materials.Thing](cfg aws.Config, name string) (*ddb.Storage[T], error) {
	return ddb.New[T](ddb.WithTable(name), ddb.WithConfig(cfg))
}

// newSeeder binds seeder to the catalog tables
func newSeeder(ctx context.Context) (*seed.Seeder, error) {
	conf := loadConfig()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(conf.Region))
	if err != nil {
		return nil, err
	}

	vendors, err := newTable[*materials.Vendor](cfg, conf.Table("Vendors"))
	if err != nil {
		return nil, err
	}

	manufacturers, err := newTable[*materials.Manufacturer](cfg, conf.Table("Manufacturers"))
	if err != nil {
		return nil, err
	}

	products, err := newTable[*materials.Product](cfg, conf.Table("Products"))
	if err != nil {
		return nil, err
	}

	links, err := newTable[*materials.ProductVendor](cfg, conf.Table("ProductVendors"))
	if err != nil {
		return nil, err
	}

	opt := []seed.Option{
		seed.WithVendors(vendors),
		seed.WithManufacturers(manufacturers),
		seed.WithProducts(products),
		seed.WithLinks(links),
		seed.WithLogger(*logging.FromContext(ctx)),
		seed.WithProductIndex(conf.ProductIndex),
	}

	if conf.ArchiveBucket != "" {
		archive, err := s3.New[*seed.Snapshot](
			s3.WithBucket(conf.ArchiveBucket),
			s3.WithPrefix("product-vendors"),
			s3.WithConfig(cfg),
		)
		if err != nil {
			return nil, err
		}
		opt = append(opt, seed.WithArchive(archive))
	}

	return seed.New(opt...)
}

// catalog from file or embedded one
func loadCatalog(path string) (*seed.Catalog, error) {
	if path == "" {
		return seed.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return seed.Parse(data)
}

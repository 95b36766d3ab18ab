//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package seed

import (
	_ "embed"
	"strings"

	"github.com/fogfish/materials"
	"github.com/fogfish/materials/reconciler"
	"github.com/goccy/go-yaml"
)

//go:embed catalog.yaml
var catalog []byte

// Catalog of fixtures
type Catalog struct {
	Vendors       []string          `yaml:"vendors"`
	Manufacturers []string          `yaml:"manufacturers"`
	Products      []Group           `yaml:"products"`
	Links         []Link            `yaml:"links"`
	URLs          map[string]string `yaml:"urls"`
}

// Group of products made by the manufacturer
type Group struct {
	Manufacturer string    `yaml:"manufacturer"`
	Items        []Product `yaml:"items"`
}

// Product fixture
type Product struct {
	Name        string `yaml:"name"`
	ModelNumber string `yaml:"model"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

// Link fixture, the cost is kept as decimal literal
type Link struct {
	ModelNumber string `yaml:"model"`
	VendorName  string `yaml:"vendor"`
	Cost        string `yaml:"cost"`
	IsPrimary   bool   `yaml:"primary"`
}

// Default catalog embedded into the binary
func Default() (*Catalog, error) {
	return Parse(catalog)
}

// Parse catalog from YAML
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errInvalidCatalog.New(err)
	}

	for _, link := range c.Links {
		if _, err := materials.NewCost(link.Cost); err != nil {
			return nil, errInvalidCatalog.New(err)
		}
	}

	return &c, nil
}

// Relationships desired by the catalog, in the order of declaration
func (c *Catalog) Relationships() []reconciler.Relationship {
	seq := make([]reconciler.Relationship, 0, len(c.Links))
	for _, link := range c.Links {
		seq = append(seq, reconciler.Relationship{
			ModelNumber: strings.TrimSpace(link.ModelNumber),
			VendorName:  strings.TrimSpace(link.VendorName),
			Cost:        materials.MustCost(link.Cost),
			IsPrimary:   link.IsPrimary,
		})
	}
	return seq
}

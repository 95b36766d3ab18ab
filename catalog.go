//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

//
// The file declares domain types of the catalog
//

package materials

import (
	"time"

	"github.com/fogfish/curie/v2"
)

// Vendor sells products, name is unique display key
type Vendor struct {
	ID          curie.IRI `dynamodbav:"id" json:"id"`
	Name        string    `dynamodbav:"name" json:"name"`
	ContactInfo string    `dynamodbav:"contactInfo" json:"contactInfo"`
	Website     string    `dynamodbav:"website" json:"website"`
	Notes       string    `dynamodbav:"notes" json:"notes"`
	CreatedAt   string    `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   string    `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (v *Vendor) HashKey() curie.IRI { return v.ID }

// Manufacturer makes products
type Manufacturer struct {
	ID        curie.IRI `dynamodbav:"id" json:"id"`
	Name      string    `dynamodbav:"name" json:"name"`
	Website   string    `dynamodbav:"website" json:"website"`
	Notes     string    `dynamodbav:"notes" json:"notes"`
	CreatedAt string    `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt string    `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (m *Manufacturer) HashKey() curie.IRI { return m.ID }

// Product is identified by model number for humans
type Product struct {
	ID             curie.IRI `dynamodbav:"id" json:"id"`
	ManufacturerID curie.IRI `dynamodbav:"manufacturerId" json:"manufacturerId"`
	ModelNumber    string    `dynamodbav:"modelNumber" json:"modelNumber"`
	Name           string    `dynamodbav:"name" json:"name"`
	Description    string    `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Category       string    `dynamodbav:"category,omitempty" json:"category,omitempty"`
	Unit           string    `dynamodbav:"unit,omitempty" json:"unit,omitempty"`
	ProductURL     string    `dynamodbav:"productUrl,omitempty" json:"productUrl,omitempty"`
	CreatedAt      string    `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt      string    `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (p *Product) HashKey() curie.IRI { return p.ID }

// ProductVendor links product with vendor at given cost.
// At most one link of the product is primary.
type ProductVendor struct {
	ID        curie.IRI `dynamodbav:"id" json:"id"`
	ProductID curie.IRI `dynamodbav:"productId" json:"productId"`
	VendorID  curie.IRI `dynamodbav:"vendorId" json:"vendorId"`
	Cost      Cost      `dynamodbav:"cost" json:"cost"`
	SKU       string    `dynamodbav:"sku,omitempty" json:"sku,omitempty"`
	IsPrimary bool      `dynamodbav:"isPrimary" json:"isPrimary"`
	CreatedAt string    `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt string    `dynamodbav:"updatedAt" json:"updatedAt"`
}

func (pv *ProductVendor) HashKey() curie.IRI { return pv.ID }

// Project is renovation job, the catalog only reads it
type Project struct {
	ID                 curie.IRI `dynamodbav:"id" json:"id"`
	Name               string    `dynamodbav:"name" json:"name"`
	Description        string    `dynamodbav:"description" json:"description"`
	ProjectNumber      string    `dynamodbav:"projectNumber,omitempty" json:"projectNumber,omitempty"`
	CustomerName       string    `dynamodbav:"customerName,omitempty" json:"customerName,omitempty"`
	Address            string    `dynamodbav:"address,omitempty" json:"address,omitempty"`
	Email              string    `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Phone              string    `dynamodbav:"phone,omitempty" json:"phone,omitempty"`
	Type               string    `dynamodbav:"type,omitempty" json:"type,omitempty"`
	Status             string    `dynamodbav:"status,omitempty" json:"status,omitempty"`
	EstimatedStartDate string    `dynamodbav:"estimatedStartDate,omitempty" json:"estimatedStartDate,omitempty"`
	CreatedAt          string    `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt          string    `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (p *Project) HashKey() curie.IRI { return p.ID }

// Timestamp formats time as ISO 8601 in UTC with millisecond precision
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// Lenses over catalog types
var (
	LinkID        = LensFor[*ProductVendor, curie.IRI]("ID")
	LinkProductID = LensFor[*ProductVendor, curie.IRI]("ProductID")
	LinkIsPrimary = LensFor[*ProductVendor, bool]("IsPrimary")
	LinkUpdatedAt = LensFor[*ProductVendor, string]("UpdatedAt")

	ProductURL       = LensFor[*Product, string]("ProductURL")
	ProductUpdatedAt = LensFor[*Product, string]("UpdatedAt")
)

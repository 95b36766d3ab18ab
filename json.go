//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package materials

import (
	"encoding/json"

	"github.com/fogfish/curie/v2"
)

//
// JSON views of catalog records. Identifiers are plain strings in JSON,
// curie.IRI would encode them as safe CURIE "[id]".
//

func (v Vendor) MarshalJSON() ([]byte, error) {
	type tStruct Vendor
	return json.Marshal(struct {
		ID string `json:"id"`
		tStruct
	}{string(v.ID), tStruct(v)})
}

func (v *Vendor) UnmarshalJSON(b []byte) error {
	type tStruct Vendor
	view := struct {
		ID string `json:"id"`
		*tStruct
	}{tStruct: (*tStruct)(v)}

	if err := json.Unmarshal(b, &view); err != nil {
		return err
	}

	v.ID = curie.IRI(view.ID)
	return nil
}

func (m Manufacturer) MarshalJSON() ([]byte, error) {
	type tStruct Manufacturer
	return json.Marshal(struct {
		ID string `json:"id"`
		tStruct
	}{string(m.ID), tStruct(m)})
}

func (m *Manufacturer) UnmarshalJSON(b []byte) error {
	type tStruct Manufacturer
	view := struct {
		ID string `json:"id"`
		*tStruct
	}{tStruct: (*tStruct)(m)}

	if err := json.Unmarshal(b, &view); err != nil {
		return err
	}

	m.ID = curie.IRI(view.ID)
	return nil
}

func (p Product) MarshalJSON() ([]byte, error) {
	type tStruct Product
	return json.Marshal(struct {
		ID             string `json:"id"`
		ManufacturerID string `json:"manufacturerId"`
		tStruct
	}{string(p.ID), string(p.ManufacturerID), tStruct(p)})
}

func (p *Product) UnmarshalJSON(b []byte) error {
	type tStruct Product
	view := struct {
		ID             string `json:"id"`
		ManufacturerID string `json:"manufacturerId"`
		*tStruct
	}{tStruct: (*tStruct)(p)}

	if err := json.Unmarshal(b, &view); err != nil {
		return err
	}

	p.ID = curie.IRI(view.ID)
	p.ManufacturerID = curie.IRI(view.ManufacturerID)
	return nil
}

func (pv ProductVendor) MarshalJSON() ([]byte, error) {
	type tStruct ProductVendor
	return json.Marshal(struct {
		ID        string `json:"id"`
		ProductID string `json:"productId"`
		VendorID  string `json:"vendorId"`
		tStruct
	}{string(pv.ID), string(pv.ProductID), string(pv.VendorID), tStruct(pv)})
}

func (pv *ProductVendor) UnmarshalJSON(b []byte) error {
	type tStruct ProductVendor
	view := struct {
		ID        string `json:"id"`
		ProductID string `json:"productId"`
		VendorID  string `json:"vendorId"`
		*tStruct
	}{tStruct: (*tStruct)(pv)}

	if err := json.Unmarshal(b, &view); err != nil {
		return err
	}

	pv.ID = curie.IRI(view.ID)
	pv.ProductID = curie.IRI(view.ProductID)
	pv.VendorID = curie.IRI(view.VendorID)
	return nil
}

func (p Project) MarshalJSON() ([]byte, error) {
	type tStruct Project
	return json.Marshal(struct {
		ID string `json:"id"`
		tStruct
	}{string(p.ID), tStruct(p)})
}

func (p *Project) UnmarshalJSON(b []byte) error {
	type tStruct Project
	view := struct {
		ID string `json:"id"`
		*tStruct
	}{tStruct: (*tStruct)(p)}

	if err := json.Unmarshal(b, &view); err != nil {
		return err
	}

	p.ID = curie.IRI(view.ID)
	return nil
}

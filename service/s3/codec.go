//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package s3

import (
	"fmt"
	"strings"

	"github.com/fogfish/materials"
)

/*
Codec is utility to encode entity identity to s3 object key
*/
type codec[T materials.Thing] struct {
	prefix string
}

func newCodec[T materials.Thing](prefix string) *codec[T] {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}

	return &codec[T]{prefix: prefix}
}

func (codec codec[T]) EncodeKey(key T) (string, error) {
	hkey := string(key.HashKey())
	if hkey == "" {
		return "", fmt.Errorf("invalid key of %T, hashkey cannot be empty", key)
	}

	return codec.prefix + hkey + ".json", nil
}

func (codec codec[T]) EncodePrefix(prefix string) string {
	return codec.prefix + prefix
}

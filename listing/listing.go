//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

// Package listing serves the content of a catalog table over
// API Gateway proxy integration.
package listing

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/fogfish/materials"
	"github.com/rs/zerolog"
)

// Handler of API Gateway proxy events
type Handler func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

var headers = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
}

// New handler lists every item of the source under the key
func New[T materials.Thing](key string, src materials.Scanner[T], logger zerolog.Logger) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		if req.HTTPMethod == http.MethodOptions {
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusOK,
				Headers:    headers,
			}, nil
		}

		seq, err := src.Scan(ctx)
		if err != nil {
			logger.Error().Err(err).Str("key", key).Msg("listing failed")
			return failure(err), nil
		}

		if seq == nil {
			seq = []T{}
		}

		body, err := json.Marshal(map[string][]T{key: seq})
		if err != nil {
			logger.Error().Err(err).Str("key", key).Msg("listing failed")
			return failure(err), nil
		}

		logger.Debug().Str("key", key).Int("items", len(seq)).Msg("listed")

		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    headers,
			Body:       string(body),
		}, nil
	}
}

func failure(err error) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": err.Error()})

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Headers:    headers,
		Body:       string(body),
	}
}

//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package ddb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/fogfish/opts"
)

// DynamoDB declares the subset of AWS DynamoDB API used by the library
type DynamoDB interface {
	GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(context.Context, *dynamodb.DeleteItemInput, ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(context.Context, *dynamodb.QueryInput, ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Option type to configure the DynamoDB
type Option = opts.Option[Options]

// Config Options
type Options struct {
	table   string
	hashKey string
	service DynamoDB
}

var (
	// Name of the table
	WithTable = opts.ForName[Options, string]("table")

	// Custom name of HashKey, default one is "id"
	WithHashKey = opts.ForName[Options, string]("hashKey")

	// Set DynamoDB client for the client
	WithService = opts.ForType[Options, DynamoDB]()

	// Set DynamoDB client for the client
	WithDynamoDB = opts.ForType[Options, DynamoDB]()

	// Configure client's DynamoDB to use provided the aws.Config
	WithConfig = opts.FMap(optsFromConfig)

	// Use default aws.Config for all DynamoDB clients
	WithDefaultDDB = opts.From(optsDefaultDDB)
)

func optsDefault() Options {
	return Options{
		hashKey: "id",
	}
}

func optsDefaultDDB(c *Options) error {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return err
	}

	return optsFromConfig(c, cfg)
}

func optsFromConfig(c *Options, cfg aws.Config) error {
	if c.service == nil {
		c.service = dynamodb.NewFromConfig(cfg)
	}
	return nil
}

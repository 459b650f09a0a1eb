// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config holds the connection settings of an S3-compatible bucket.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	// Prefix is prepended to every key, e.g. "kachel/".
	Prefix string
}

// S3 stores blobs in a single S3-compatible bucket. It is configured for
// path-style addressing, which CEPH, MinIO and Hetzner require.
type S3 struct {
	s3     *s3.Client
	bucket string
	prefix string
}

// NewS3 creates an S3 blob store. Returns (nil, nil) if the endpoint,
// credentials or bucket are empty, so callers can fall back to local
// storage.
func NewS3(cfg S3Config) (*S3, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, nil
	}

	// Strip trailing slash from endpoint for consistent URL building.
	endpoint := strings.TrimRight(cfg.Endpoint, "/")

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	})

	prefix := strings.Trim(cfg.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}

	return &S3{s3: client, bucket: cfg.Bucket, prefix: prefix}, nil
}

func (c *S3) objectKey(key string) (string, error) {
	if !validKey(key) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return c.prefix + key, nil
}

// Check verifies that the bucket exists and is reachable.
func (c *S3) Check(ctx context.Context) error {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)})
	if err != nil {
		return fmt.Errorf("s3 head bucket %s: %w", c.bucket, err)
	}
	return nil
}

// Put uploads data under key.
func (c *S3) Put(ctx context.Context, key, contentType string, data []byte) error {
	k, err := c.objectKey(key)
	if err != nil {
		return err
	}
	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(k),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", c.bucket, k, err)
	}
	return nil
}

// Get downloads the object under key.
func (c *S3) Get(ctx context.Context, key string) ([]byte, error) {
	k, err := c.objectKey(key)
	if err != nil {
		return nil, err
	}
	output, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(k),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("s3 download %s/%s: %w", c.bucket, k, err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read body %s/%s: %w", c.bucket, k, err)
	}
	return data, nil
}

// Delete removes the object under key. S3 reports success for missing keys.
func (c *S3) Delete(ctx context.Context, key string) error {
	k, err := c.objectKey(key)
	if err != nil {
		return err
	}
	_, err = c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(k),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, k, err)
	}
	return nil
}

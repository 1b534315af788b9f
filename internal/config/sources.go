package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oa-drill/evaluator/internal/problems"
)

// AWS loads the default AWS SDK configuration for the configured region.
func (c *Config) AWS(ctx context.Context) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.AWSRegion))
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return cfg, nil
}

// ProblemLookup returns the S3 store when a bucket is configured and the
// problem cache file otherwise.
func (c *Config) ProblemLookup(ctx context.Context) (problems.Lookup, error) {
	if c.ProblemsS3Bucket == "" {
		return problems.NewFileStore(c.ProblemsFile), nil
	}
	cfg, err := c.AWS(ctx)
	if err != nil {
		return nil, err
	}
	return problems.NewS3Store(s3.NewFromConfig(cfg), c.ProblemsS3Bucket, c.ProblemsS3Prefix), nil
}

package s3fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/jminnion/trendsnap/pkg/fileutil"
)

// S3API is the slice of the S3 client the fetcher uses. Tests substitute an
// in-memory implementation.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Client provides the S3 operations for fetching snapshot files.
type Client struct {
	api S3API
}

// NewClient creates a client using the default AWS configuration chain.
func NewClient(ctx context.Context) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &Client{api: s3.NewFromConfig(cfg)}, nil
}

// NewClientWithAPI creates a client over an existing S3 API implementation.
func NewClientWithAPI(api S3API) *Client {
	return &Client{api: api}
}

// DownloadObject downloads one object to destPath through a temp-file rename
// and returns the byte count.
func (c *Client) DownloadObject(ctx context.Context, bucket, key, destPath string) (int64, error) {
	resp, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, fmt.Errorf("get object s3://%s/%s: %w", bucket, key, err)
	}
	defer resp.Body.Close()

	var n int64
	err = fileutil.WriteTmpThenMove(destPath, func(f *os.File) error {
		n, err = io.Copy(f, resp.Body)
		if err != nil {
			return fmt.Errorf("write s3://%s/%s to %s: %w", bucket, key, destPath, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ListDBFKeys lists all .DBF object keys under a prefix, following
// continuation tokens.
func (c *Client) ListDBFKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	var token *string

	for {
		resp, err := c.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", bucket, prefix, err)
		}

		for _, obj := range resp.Contents {
			if obj.Key != nil && isDBFKey(*obj.Key) {
				keys = append(keys, *obj.Key)
			}
		}

		if resp.IsTruncated == nil || !*resp.IsTruncated {
			return keys, nil
		}
		token = resp.NextContinuationToken
	}
}

// isNotFound reports whether an S3 error means the key does not exist.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	// Some S3-compatible endpoints only surface the code string.
	return strings.Contains(err.Error(), "NoSuchKey")
}

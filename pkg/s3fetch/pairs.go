package s3fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/jminnion/trendsnap/internal/logctx"
)

// FetchConfig configures a snapshot fetch.
type FetchConfig struct {
	// DownloadDir is the local directory downloads land in.
	DownloadDir string
	// Concurrency is the number of parallel pair downloads (default 4).
	Concurrency int
}

func (c *FetchConfig) validate() {
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
}

// FetchPair downloads one snapshot pair named by an s3://bucket/key .DBF
// URI. The sibling .IDX is probed in both extension cases; a missing index
// is not an error, the pair just comes back without one.
func (c *Client) FetchPair(ctx context.Context, uri string, cfg FetchConfig) (Pair, error) {
	cfg.validate()
	logger := logctx.FromContext(ctx)

	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return Pair{}, err
	}
	if !isDBFKey(key) {
		return Pair{}, fmt.Errorf("%s: %w", uri, ErrNotDBF)
	}

	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		return Pair{}, fmt.Errorf("create download dir: %w", err)
	}

	pair := Pair{Bucket: bucket, DBFKey: key}

	pair.DBFPath = filepath.Join(cfg.DownloadDir, filepath.Base(key))
	n, err := c.DownloadObject(ctx, bucket, key, pair.DBFPath)
	if err != nil {
		return Pair{}, err
	}
	pair.Bytes = n

	for _, idxKey := range siblingIndexKeys(key) {
		localPath := filepath.Join(cfg.DownloadDir, filepath.Base(idxKey))
		n, err := c.DownloadObject(ctx, bucket, idxKey, localPath)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return Pair{}, err
		}
		pair.IDXKey = idxKey
		pair.IDXPath = localPath
		pair.Bytes += n
		break
	}

	if pair.IDXPath == "" {
		logger.Debug().Str("dbf", key).Msg("no sibling index in bucket")
	}

	return pair, nil
}

// FetchPairs downloads several snapshot pairs concurrently. The result slice
// aligns with uris; one failed download fails the whole fetch.
func (c *Client) FetchPairs(ctx context.Context, uris []string, cfg FetchConfig) ([]Pair, error) {
	cfg.validate()

	pairs := make([]Pair, len(uris))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for i, uri := range uris {
		g.Go(func() error {
			pair, err := c.FetchPair(ctx, uri, cfg)
			if err != nil {
				return err
			}
			pairs[i] = pair
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// FetchPrefix lists every .DBF under an s3://bucket/prefix URI and downloads
// each with its sibling index.
func (c *Client) FetchPrefix(ctx context.Context, uri string, cfg FetchConfig) ([]Pair, error) {
	bucket, prefix, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}

	keys, err := c.ListDBFKeys(ctx, bucket, prefix)
	if err != nil {
		return nil, err
	}

	uris := make([]string, len(keys))
	for i, k := range keys {
		uris[i] = "s3://" + bucket + "/" + k
	}
	return c.FetchPairs(ctx, uris, cfg)
}

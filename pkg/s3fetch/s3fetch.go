// Package s3fetch downloads trend snapshot pairs from S3. Snapshot archives
// are typically synced off the HMI workstation into a bucket; this package
// pulls .DBF files and their sibling .IDX indexes back down for conversion.
package s3fetch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotDBF is returned when a fetch URI does not point at a .DBF object.
var ErrNotDBF = errors.New("object key does not end in .DBF")

// Pair is one downloaded snapshot: the local .DBF path and, when the bucket
// held a sibling index, the local .IDX path.
type Pair struct {
	DBFPath string
	IDXPath string

	Bucket string
	DBFKey string
	IDXKey string

	Bytes int64
}

// ParseS3URI parses an S3 URI (s3://bucket/key) into bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, "s3://") {
		return "", "", fmt.Errorf("invalid S3 URI %q: must start with s3://", uri)
	}

	path := strings.TrimPrefix(uri, "s3://")
	parts := strings.SplitN(path, "/", 2)
	if parts[0] == "" {
		return "", "", fmt.Errorf("invalid S3 URI %q: missing bucket name", uri)
	}

	bucket = parts[0]
	if len(parts) == 2 {
		key = parts[1]
	}

	return bucket, key, nil
}

// isDBFKey reports whether an object key names a snapshot data file.
func isDBFKey(key string) bool {
	return strings.HasSuffix(strings.ToLower(key), ".dbf")
}

// siblingIndexKeys returns the candidate index keys for a .DBF key, in probe
// order. Keys synced off Windows hosts keep whichever case the tool wrote.
func siblingIndexKeys(dbfKey string) []string {
	stem := dbfKey[:len(dbfKey)-len(".dbf")]
	return []string{stem + ".IDX", stem + ".idx"}
}

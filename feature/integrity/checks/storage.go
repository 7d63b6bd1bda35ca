package checks

import (
	"context"
	"fmt"
	"strings"

	"asset-diff/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageReport is the result of a storage check.
type StorageReport struct {
	Bucket string `json:"bucket"`
	Exists bool   `json:"exists"`
	// EmptyPrefixes lists the required prefixes holding no object.
	EmptyPrefixes []string `json:"empty_prefixes"`
	Status        string   `json:"status"` // "ok", "error"
}

// CheckStorage verifies that bucket exists and that each prefix holds at
// least one document.
func CheckStorage(ctx context.Context, client storage.Client, bucket string, prefixes []string) (*StorageReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	report := &StorageReport{
		Bucket:        bucket,
		Exists:        exists,
		EmptyPrefixes: []string{},
		Status:        "ok",
	}
	if !exists {
		report.Status = "error"
		return report, nil
	}

	for _, prefix := range prefixes {
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}

		opts := minio.ListObjectsOptions{
			Prefix:    prefix,
			Recursive: true,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err != nil {
				return nil, fmt.Errorf("failed to list %q: %w", prefix, obj.Err)
			}
			found = true
			break
		}

		if !found {
			report.EmptyPrefixes = append(report.EmptyPrefixes, prefix)
			report.Status = "error"
		}
	}

	return report, nil
}

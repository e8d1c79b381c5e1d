package transfer

import (
	"context"
	"fmt"
	"log/slog"
)

// Preclean empties the whole bucket, not just the sync prefix. In dry-run
// mode it only logs what it would do.
func Preclean(ctx context.Context, bucket BucketHandle, name string, dryRun bool, logger *slog.Logger) error {
	if dryRun {
		logger.Info("would clear bucket", "bucket", name)
		return nil
	}

	logger.Info("removing files", "bucket", name)
	if err := bucket.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear bucket %s: %w", name, err)
	}
	logger.Info("bucket cleared", "bucket", name)
	return nil
}

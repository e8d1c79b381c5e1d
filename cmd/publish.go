package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"s3publish/config"
	"s3publish/internal/models"
	"s3publish/internal/transfer"
	"s3publish/pkg/utils"
)

type publishRequest struct {
	kind         transfer.JobKind
	localPath    string
	remotePrefix string
	clean        bool
}

func transferConfig(cmd *cobra.Command, settings *config.Config, kind transfer.JobKind) transfer.Config {
	return transfer.Config{
		Bucket:       settings.BucketName,
		Region:       settings.Region,
		AccessKey:    settings.AccessKey,
		AccessSecret: settings.SecretKey,
		ACL:          settings.ACL,
		Concurrency:  settings.Concurrency,
		DryRun:       isDryRun(cmd),
		Verbose:      isVerbose(cmd),
		Kind:         kind,
	}
}

func runPublish(ctx context.Context, cmd *cobra.Command, req publishRequest) (*models.PublishResult, error) {
	settings := settings(cmd)
	tcfg := transferConfig(cmd, settings, req.kind).WithDefaults()
	tcfg.Clean = req.clean

	if err := tcfg.Validate(); err != nil {
		return nil, err
	}

	bucket, err := openBucket(settings)
	if err != nil {
		return nil, err
	}

	slog.Info("Summary for "+cmd.Name(),
		"bucket", tcfg.Bucket,
		"region", tcfg.Region,
		"access_key", utils.MaskSecret(tcfg.AccessKey),
		"acl", tcfg.ACL,
		"local", req.localPath,
		"remote", req.remotePrefix,
		"threads", tcfg.Concurrency,
		"clean", tcfg.Clean,
		"dry_run", tcfg.DryRun,
	)

	job := transfer.NewJob(tcfg, req.localPath, req.remotePrefix, bucket, transfer.WithLogger(slog.Default()))
	result, err := job.Run(ctx)
	return publishResult(result, req), err
}

func publishResult(result *transfer.Result, req publishRequest) *models.PublishResult {
	if result == nil {
		return nil
	}
	return &models.PublishResult{
		JobID:          result.JobID,
		JobKind:        result.Kind.String(),
		BucketName:     result.Bucket,
		LocalPath:      req.localPath,
		RemotePrefix:   req.remotePrefix,
		PublicURL:      result.PublicURL,
		State:          result.State.String(),
		DryRun:         result.DryRun,
		TotalUnits:     result.TotalUnits,
		TotalFiles:     result.TotalFiles,
		TotalSizeBytes: result.TotalBytes,
		TotalSizeHuman: utils.FormatBytes(result.TotalBytes),
		OperationTime:  utils.FormatTime(result.StartedAt),
		Duration:       result.Duration.Round(time.Millisecond).String(),
	}
}

func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, _ := cmd.Flags().GetInt("timeout")
	if timeout <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), time.Duration(timeout)*time.Second)
}

// fail prints err the way every command reports errors and hands it back so
// the process exits non-zero.
func fail(cmd *cobra.Command, err error) error {
	utils.WriteError(cmd.OutOrStdout(), err, cmd.Name())
	return err
}

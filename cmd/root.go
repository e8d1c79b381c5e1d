package cmd

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"s3publish/config"
	"s3publish/internal/s3client"
)

var (
	cfg        *config.Config
	openBucket = s3client.Open
)

var rootCmd = &cobra.Command{
	Use:   "s3publish",
	Short: "Publish files, build folders and static sites to S3",
	Long: `s3publish uploads local files to an S3 bucket.
It can publish a single file, copy a build folder under a remote path,
sync a folder to a remote prefix or deploy a whole static site to the bucket root.
Configuration is loaded from .env file or environment variables`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	},
}

func Execute(config *config.Config) error {
	cfg = config
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(findCmd)

	rootCmd.PersistentFlags().StringP("bucket", "b", "", "Override bucket name from config")
	rootCmd.PersistentFlags().String("region", "", "Override region from config")
	rootCmd.PersistentFlags().String("acl", "", "Canned ACL for uploaded objects (default from config, public-read)")
	rootCmd.PersistentFlags().IntP("threads", "t", 0, "Number of concurrent uploads (default from config, 3)")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Show what would be uploaded without changing the bucket")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

func setupLogging(cmd *cobra.Command) {
	level := log.InfoLevel
	if isVerbose(cmd) {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:           level,
		TimeFormat:      time.RFC3339,
		ReportTimestamp: true,
	})
	slog.SetDefault(slog.New(handler))
}

// settings returns a copy of the loaded config with flag overrides applied.
func settings(cmd *cobra.Command) *config.Config {
	merged := *cfg

	if bucket, _ := cmd.Flags().GetString("bucket"); bucket != "" {
		merged.BucketName = bucket
	}
	if region, _ := cmd.Flags().GetString("region"); region != "" {
		merged.Region = region
	}
	if acl, _ := cmd.Flags().GetString("acl"); acl != "" {
		merged.ACL = acl
	}
	if threads, _ := cmd.Flags().GetInt("threads"); cmd.Flags().Changed("threads") {
		merged.Concurrency = threads
	}

	return &merged
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

func isDryRun(cmd *cobra.Command) bool {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	return dryRun
}

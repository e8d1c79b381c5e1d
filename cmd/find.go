package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"s3publish/internal/lookup"
	"s3publish/internal/models"
	"s3publish/internal/transfer"
	"s3publish/pkg/utils"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find a published file and print its public URL",
	Long: `List the objects under a prefix and return the first one whose key contains the filename.

When several objects match, a warning is logged and the first key in lexical order is used.
With --fail the command errors when nothing matches.`,
	Example: `  # Find the latest release build
  s3publish find --prefix releases/1.4.0 --filename app-release.apk

  # Fail when the build is missing
  s3publish find --prefix releases/1.4.0 --filename app-release.apk --fail`,
	Args: cobra.NoArgs,
	RunE: runFind,
}

func runFind(cmd *cobra.Command, args []string) error {
	prefix, _ := cmd.Flags().GetString("prefix")
	filename, _ := cmd.Flags().GetString("filename")
	mustExist, _ := cmd.Flags().GetBool("fail")

	settings := settings(cmd)
	if err := requireSettings(settings.AccessKey, settings.SecretKey, settings.Region, settings.BucketName); err != nil {
		return fail(cmd, err)
	}
	if prefix == "" {
		return fail(cmd, &transfer.ConfigError{Field: "prefix"})
	}
	if filename == "" {
		return fail(cmd, &transfer.ConfigError{Field: "filename"})
	}

	bucket, err := openBucket(settings)
	if err != nil {
		return fail(cmd, err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	match, err := lookup.Find(ctx, bucket, prefix, filename, mustExist)
	if err != nil {
		return fail(cmd, err)
	}

	result := models.FindResult{
		BucketName:    settings.BucketName,
		Prefix:        prefix,
		Filename:      filename,
		Key:           match.Key,
		PublicURL:     match.PublicURL,
		Matches:       match.Matches,
		OperationTime: utils.FormatTime(time.Now()),
	}
	if result.Matches == nil {
		result.Matches = []string{}
	}

	if err := utils.WriteJSON(cmd.OutOrStdout(), result); err != nil {
		return fail(cmd, err)
	}
	return nil
}

func requireSettings(accessKey, secretKey, region, bucket string) error {
	switch {
	case accessKey == "":
		return &transfer.ConfigError{Field: "access key"}
	case secretKey == "":
		return &transfer.ConfigError{Field: "access secret"}
	case region == "":
		return &transfer.ConfigError{Field: "region"}
	case bucket == "":
		return &transfer.ConfigError{Field: "bucket"}
	}
	return nil
}

func init() {
	findCmd.Flags().String("prefix", "", "Prefix of the keys to search")
	findCmd.Flags().String("filename", "", "Part of the key to look for")
	findCmd.Flags().Bool("fail", false, "Fail when no file matches")
}

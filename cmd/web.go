package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"s3publish/internal/transfer"
	"s3publish/pkg/utils"
)

var webCmd = &cobra.Command{
	Use:   "web <site folder>",
	Short: "Deploy a static site folder to the bucket root",
	Long: `Deploy the contents of a folder as a website to the root of the S3 bucket.

With --clean every object in the bucket is deleted before the upload starts.
The whole bucket is cleared, not only the keys the site uses.

WARNING: --clean is irreversible. Deleted objects cannot be recovered.`,
	Example: `  # Deploy a site
  s3publish web public

  # Replace the whole bucket content with the site
  s3publish web public --clean --confirm

  # Rehearse a clean deploy
  s3publish web public --clean --dry-run --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runWeb,
}

func runWeb(cmd *cobra.Command, args []string) error {
	folder := args[0]
	clean, _ := cmd.Flags().GetBool("clean")
	confirm, _ := cmd.Flags().GetBool("confirm")

	if err := utils.ValidatePaths([]string{folder}); err != nil {
		return fail(cmd, err)
	}

	if clean && !confirm && !isDryRun(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "WARNING: This will permanently delete every object in bucket '%s' before deploying %s.\n",
			settings(cmd).BucketName, folder)
		fmt.Fprint(cmd.OutOrStdout(), "Continue? (y/N): ")

		var response string
		// A closed stdin or an empty answer counts as no.
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &response); err != nil {
			response = ""
		}
		if !slices.Contains([]string{"y", "yes"}, strings.ToLower(response)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Web deploy cancelled.")
			return nil
		}
	}

	ctx, cancel := withTimeout(cmd)
	defer cancel()

	result, err := runPublish(ctx, cmd, publishRequest{
		kind:      transfer.FullBucketSync,
		localPath: folder,
		clean:     clean,
	})
	if err != nil {
		return fail(cmd, err)
	}

	if err := utils.WriteJSON(cmd.OutOrStdout(), result); err != nil {
		return fail(cmd, err)
	}
	return nil
}

func init() {
	webCmd.Flags().Bool("clean", false, "Delete every object in the bucket before uploading")
	webCmd.Flags().Bool("confirm", false, "Skip confirmation prompt")
	webCmd.Flags().Int("timeout", 3600, "Timeout in seconds for the operation (default: 1 hour)")
}

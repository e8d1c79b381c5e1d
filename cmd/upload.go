package cmd

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"s3publish/internal/models"
	"s3publish/internal/transfer"
	"s3publish/pkg/utils"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a file or a folder to S3",
	Long: `Upload a single file and/or a folder to the S3 bucket.

A file is stored as <path>/<file name>. A failed file upload aborts the command.

A folder is copied as <path>/<folder name>/... using several concurrent uploads.
Files that fail to upload are reported and skipped; the copy still completes.

The public URL of the file, or of the copied folder, is printed in the result.`,
	Example: `  # Upload a build artifact
  s3publish upload --file build/app.apk --path releases/1.4.0

  # Copy a folder (stored under releases/1.4.0/reports)
  s3publish upload --folder build/reports --path releases/1.4.0

  # Both at once, with 8 concurrent uploads
  s3publish upload --file build/app.apk --folder build/reports --path releases/1.4.0 -t 8

  # See what would be uploaded
  s3publish upload --folder build/reports --path releases/1.4.0 --dry-run --verbose`,
	Args: cobra.NoArgs,
	RunE: runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	folder, _ := cmd.Flags().GetString("folder")
	remotePath, _ := cmd.Flags().GetString("path")

	if file == "" && folder == "" {
		return fail(cmd, errors.New("either --file or --folder is required"))
	}

	var requests []publishRequest
	if file != "" {
		requests = append(requests, publishRequest{
			kind:         transfer.SingleFile,
			localPath:    file,
			remotePrefix: remotePath,
		})
	}
	if folder != "" {
		prefix, err := folderPrefix(remotePath, folder)
		if err != nil {
			return fail(cmd, err)
		}
		requests = append(requests, publishRequest{
			kind:         transfer.FolderCopy,
			localPath:    folder,
			remotePrefix: prefix,
		})
	}

	ctx, cancel := withTimeout(cmd)
	defer cancel()

	results := make([]*models.PublishResult, 0, len(requests))
	for _, req := range requests {
		result, err := runPublish(ctx, cmd, req)
		if err != nil {
			return fail(cmd, err)
		}
		results = append(results, result)
	}

	var output interface{} = results
	if len(results) == 1 {
		output = results[0]
	}
	if err := utils.WriteJSON(cmd.OutOrStdout(), output); err != nil {
		return fail(cmd, err)
	}
	return nil
}

// folderPrefix places a folder under remotePath using the folder's own name.
func folderPrefix(remotePath, folder string) (string, error) {
	absFolder, err := filepath.Abs(folder)
	if err != nil {
		return "", err
	}
	return transfer.RemoteKey(remotePath, filepath.Base(absFolder)), nil
}

func init() {
	uploadCmd.Flags().StringP("file", "f", "", "Local file to upload")
	uploadCmd.Flags().String("folder", "", "Local folder to copy")
	uploadCmd.Flags().StringP("path", "p", "", "Remote path the file or folder is placed under")
	uploadCmd.Flags().Int("timeout", 3600, "Timeout in seconds for the operation (default: 1 hour)")
}

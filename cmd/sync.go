package cmd

import (
	"github.com/spf13/cobra"

	"s3publish/internal/transfer"
	"s3publish/pkg/utils"
)

var syncCmd = &cobra.Command{
	Use:   "sync <local folder>",
	Short: "Sync a local folder to a remote folder",
	Long: `Upload the contents of a local folder to a remote folder.

Unlike upload --folder, the local folder name is not added to the remote path:
<local>/a/b.txt is stored as <remote>/a/b.txt. Every file is uploaded on each run.`,
	Example: `  # Sync a generated report folder
  s3publish sync build/coverage --remote coverage/main

  # Sync to another bucket
  s3publish sync build/coverage --remote coverage/main --bucket my-other-bucket`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	local := args[0]
	remote, _ := cmd.Flags().GetString("remote")

	if err := utils.ValidatePaths([]string{local}); err != nil {
		return fail(cmd, err)
	}

	ctx, cancel := withTimeout(cmd)
	defer cancel()

	result, err := runPublish(ctx, cmd, publishRequest{
		kind:         transfer.FolderCopy,
		localPath:    local,
		remotePrefix: remote,
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
	syncCmd.Flags().StringP("remote", "r", "", "The remote folder to sync into")
	syncCmd.Flags().Int("timeout", 3600, "Timeout in seconds for the operation (default: 1 hour)")
	_ = syncCmd.MarkFlagRequired("remote")
}

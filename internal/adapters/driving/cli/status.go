package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [workspace-id]",
	Short: "Show a workspace's processing status and documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	var id uint
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		return fmt.Errorf("invalid workspace ID %q", args[0])
	}

	ctx := context.Background()
	ws, err := workspaceStore.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("workspace %d: %w", id, err)
	}

	cmd.Printf("Workspace %d: %s\n", ws.ID, ws.Name)
	cmd.Printf("Status: %s\n", ws.ProcessingStatus)
	if ws.IndexPath != nil {
		cmd.Printf("Index: %s\n", *ws.IndexPath)
	}

	docs, err := documentStore.ListByWorkspace(ctx, id)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents.")
		return nil
	}

	cmd.Println("Documents:")
	for _, doc := range docs {
		indexed := "pending"
		if doc.IsIndexed {
			indexed = "indexed"
		}
		cmd.Printf("  [%d] %s (%s)\n", doc.ID, doc.Title, indexed)
	}
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/genscholar/scholar-engine/internal/core/domain"
)

var (
	ingestWorkspaceID   uint
	ingestWorkspaceName string
	ingestAsync         bool
)

// asyncPollInterval paces the status polling in async mode.
const asyncPollInterval = 2 * time.Second

// asyncPollTimeout bounds how long async mode waits for the queue worker.
const asyncPollTimeout = 30 * time.Minute

var ingestCmd = &cobra.Command{
	Use:   "ingest [pdf-file...]",
	Short: "Upload and index PDF documents into a workspace",
	Long: `Uploads one or more PDF files into a workspace and runs the
ingestion pipeline: text extraction, summarisation, chunking, embedding
and index merge. Without --workspace a new workspace is created.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().UintVarP(&ingestWorkspaceID, "workspace", "w", 0, "target workspace ID (0 creates a new workspace)")
	ingestCmd.Flags().StringVar(&ingestWorkspaceName, "name", "", "name for a newly created workspace")
	ingestCmd.Flags().BoolVar(&ingestAsync, "async", false, "enqueue on the background worker and poll for completion")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	ws, err := resolveIngestWorkspace(ctx, args[0])
	if err != nil {
		return err
	}

	docIDs := make([]uint, 0, len(args))
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		doc := &domain.Document{
			WorkspaceID: ws.ID,
			Title:       documentTitle(path),
			Content:     content,
		}
		if err := documentStore.Save(ctx, doc); err != nil {
			return fmt.Errorf("store %s: %w", path, err)
		}
		cmd.Printf("Uploaded %q as document %d\n", doc.Title, doc.ID)
		docIDs = append(docIDs, doc.ID)
	}

	if ingestAsync {
		return ingestInBackground(cmd, ws.ID, docIDs)
	}

	failed := false
	for _, id := range docIDs {
		res := ingestService.Ingest(ctx, id)
		if res.Failed() {
			failed = true
			cmd.Printf("Document %d failed (reached %s): %v\n", id, res.Step, res.Err)
		} else {
			cmd.Printf("Document %d indexed\n", id)
		}
	}
	if failed {
		return errors.New("one or more documents failed to ingest")
	}
	return nil
}

// resolveIngestWorkspace loads the target workspace or creates a fresh one.
func resolveIngestWorkspace(ctx context.Context, firstFile string) (*domain.Workspace, error) {
	if ingestWorkspaceID != 0 {
		ws, err := workspaceStore.Get(ctx, ingestWorkspaceID)
		if err != nil {
			return nil, fmt.Errorf("workspace %d: %w", ingestWorkspaceID, err)
		}
		return ws, nil
	}

	name := ingestWorkspaceName
	if name == "" {
		name = documentTitle(firstFile)
	}
	ws := &domain.Workspace{Name: name, ProcessingStatus: domain.StatusNone}
	if err := workspaceStore.Save(ctx, ws); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	fmt.Printf("Created workspace %d (%s)\n", ws.ID, ws.Name)
	return ws, nil
}

// ingestInBackground pushes the documents through the ingest queue and
// polls the stores until every document is indexed or the workspace fails.
func ingestInBackground(cmd *cobra.Command, workspaceID uint, docIDs []uint) error {
	ingestQueue.Start()
	for _, id := range docIDs {
		if err := ingestQueue.Enqueue(id); err != nil {
			return fmt.Errorf("enqueue document %d: %w", id, err)
		}
	}

	ctx := context.Background()
	deadline := time.Now().Add(asyncPollTimeout)
	for time.Now().Before(deadline) {
		time.Sleep(asyncPollInterval)

		ws, err := workspaceStore.Get(ctx, workspaceID)
		if err != nil {
			return fmt.Errorf("poll workspace: %w", err)
		}
		if ws.ProcessingStatus == domain.StatusFailed {
			return errors.New("ingestion failed; run status for details")
		}

		if allIndexed(ctx, docIDs) {
			cmd.Printf("All %d documents indexed\n", len(docIDs))
			return nil
		}
	}
	return errors.New("timed out waiting for background ingestion")
}

func allIndexed(ctx context.Context, docIDs []uint) bool {
	for _, id := range docIDs {
		doc, err := documentStore.Get(ctx, id)
		if err != nil || !doc.IsIndexed {
			return false
		}
	}
	return true
}

// documentTitle derives a document title from a file path.
func documentTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

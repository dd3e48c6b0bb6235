package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/genscholar/scholar-engine/internal/core/domain"
)

var (
	askWorkspaceID uint
	askTimeout     time.Duration
)

// DefaultAskTimeout bounds a single question end to end, including
// classification, retrieval and generation.
const DefaultAskTimeout = 90 * time.Second

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about a workspace's documents",
	Long: `Routes the question through intent classification and answers it
from the workspace's indexed documents. Summary and abstract requests are
served from cached fields; content questions run retrieval-augmented
generation over the workspace index.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().UintVarP(&askWorkspaceID, "workspace", "w", 0, "workspace ID (required)")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", DefaultAskTimeout, "maximum time to wait for an answer")
	_ = askCmd.MarkFlagRequired("workspace")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	// Answer never returns an error; the timeout substitutes a fixed
	// message so a hung upstream call cannot stall the command forever.
	answerCh := make(chan string, 1)
	go func() {
		answerCh <- answerService.Answer(ctx, question, askWorkspaceID)
	}()

	select {
	case answer := <-answerCh:
		cmd.Println(answer)
	case <-ctx.Done():
		cmd.Println(domain.MsgAnswerTimeout)
	}
	return nil
}

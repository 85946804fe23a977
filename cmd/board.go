package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	boardrender "github.com/bnema/stockboard-cli/internal/adapters/render/board"
	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Read and write the discussion board",
	}

	cmd.AddCommand(
		newBoardListCmd(app),
		newBoardPostCmd(app),
		newBoardComposeCmd(app),
	)

	return cmd
}

type postOutput struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

func newBoardListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every post in stored order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			posts, err := app.board.LoadPosts(cmd.Context(), &boardrender.Collector{})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, postsOutput(posts))
			}

			rendered, err := boardrender.Render(posts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newBoardPostCmd(app *app) *cobra.Command {
	var username string
	var content string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Append a post to the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := &boardrender.Collector{}
			post, err := app.board.SubmitPost(cmd.Context(), view, username, content)
			if errors.Is(err, domain.ErrEmptyField) {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), boardrender.RenderAlert(view.LastAlert()))
				return err
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "posted as %s\n", post.Username)
			return err
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Post author")
	cmd.Flags().StringVar(&content, "content", "", "Post body")

	return cmd
}

func newBoardComposeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compose",
		Short: "Open the interactive board with a post form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			posts, err := app.board.LoadPosts(cmd.Context(), &boardrender.Collector{})
			if err != nil {
				return err
			}

			_, err = boardrender.RunCompose(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), posts, app.board.SubmitPost)
			return err
		},
	}
}

func postsOutput(posts []domain.Post) []postOutput {
	out := make([]postOutput, 0, len(posts))
	for _, post := range posts {
		out = append(out, postOutput{Username: post.Username, Content: post.Content})
	}
	return out
}

func writeJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

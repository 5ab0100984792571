package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mamaar/condflat/internal/logging"
	"github.com/mamaar/condflat/pkg/rewrite"
	"github.com/mamaar/condflat/pkg/types"
)

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE",
		Short: "List every position in the file where a transform applies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			file := args[0]
			content, err := os.ReadFile(file)
			if err != nil {
				return &exitError{code: ExitIOError, err: err}
			}
			doc, err := rewrite.ParseDocument(file, string(content))
			if err != nil {
				return &exitError{code: ExitInternalError, err: err}
			}

			plan := rewrite.BuildPlan(rewrite.NewProposer(cfg.Indent.Unit()).ListOpportunities(doc))
			if plan.Empty() {
				logging.Default().Info("no applicable transforms", "file", file)
				return &exitError{code: ExitNothingApplicable, silent: true, err: &types.RefactorError{
					Kind:    types.NoApplicableContext,
					Message: "no applicable transforms in file",
					File:    file,
				}}
			}

			out := cmd.OutOrStdout()
			for _, e := range plan.Edits {
				if !transformEnabled(cfg, e.Description) {
					continue
				}
				fmt.Fprintf(out, "%s:%d:%d: %s\n", e.File, e.StartPos.Line, e.StartPos.Column, e.Description)
			}
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mamaar/condflat/internal/config"
	"github.com/mamaar/condflat/internal/logging"
	"github.com/mamaar/condflat/pkg/rewrite"
	"github.com/mamaar/condflat/pkg/types"
)

func newGuardCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "guard FILE:LINE:COL",
		Short: "Flatten the if/else at the position into a guard clause",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, opts, args[0], rewrite.TitleGuardClause)
		},
	}
}

func newInvertCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "invert FILE:LINE:COL",
		Short: "Invert the condition at the position and flatten to a guard clause",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, opts, args[0], rewrite.TitleInvert)
		},
	}
}

func newExpandCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "expand FILE:LINE:COL",
		Short: "Expand the ternary at the position into if/else statements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, opts, args[0], rewrite.TitleExpand)
		},
	}
}

func runTransform(cmd *cobra.Command, opts *options, positionArg, title string) error {
	logger := logging.Default()

	switch title {
	case rewrite.TitleGuardClause, rewrite.TitleInvert, rewrite.TitleExpand:
	default:
		return &exitError{code: ExitInternalError, err: &types.RefactorError{
			Kind:    types.InternalError,
			Message: fmt.Sprintf("unknown transform %q", title),
		}}
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if !transformEnabled(cfg, title) {
		logger.Warn("transform disabled by config", "transform", title)
		return &exitError{code: ExitNothingApplicable, silent: true, err: &types.RefactorError{
			Kind:    types.NoApplicableContext,
			Message: fmt.Sprintf("%s is disabled by config", title),
		}}
	}

	file, pos, err := parsePositionArg(positionArg)
	if err != nil {
		return &exitError{code: ExitInvalidUsage, err: err}
	}

	doc, offset, err := loadDocument(file, pos)
	if err != nil {
		return err
	}

	proposer := rewrite.NewProposer(cfg.Indent.Unit())
	var edits []types.Edit
	switch title {
	case rewrite.TitleGuardClause:
		edits = proposer.ProposeGuardClauseSimplify(doc, offset)
	case rewrite.TitleInvert:
		edits = proposer.ProposeInvertAndSimplify(doc, offset)
	case rewrite.TitleExpand:
		edits = proposer.ProposeConditionalExpansion(doc, offset)
	}

	if len(edits) == 0 {
		logger.Info("nothing applicable at position", "file", file, "line", pos.Line, "column", pos.Column)
		return &exitError{code: ExitNothingApplicable, silent: true, err: &types.RefactorError{
			Kind:    types.NoApplicableContext,
			Message: "no applicable transform at position",
			File:    file,
			Line:    pos.Line,
			Column:  pos.Column,
		}}
	}

	if opts.write {
		if err := rewrite.NewApplier().ApplyPlan(rewrite.BuildPlan(edits)); err != nil {
			return &exitError{code: ExitIOError, err: err}
		}
		logger.Info("applied", "transform", title, "file", file)
		return nil
	}

	printPreview(cmd, edits)
	return nil
}

// loadDocument reads and parses a file and converts the position to an offset.
func loadDocument(file string, pos types.Position) (*rewrite.Document, int, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, 0, &exitError{code: ExitIOError, err: err}
	}
	doc, err := rewrite.ParseDocument(file, string(content))
	if err != nil {
		return nil, 0, &exitError{code: ExitInternalError, err: err}
	}
	offset, err := doc.Src.OffsetAt(pos)
	if err != nil {
		return nil, 0, &exitError{code: ExitInvalidUsage, err: err}
	}
	return doc, offset, nil
}

func transformEnabled(cfg *config.Config, title string) bool {
	switch title {
	case rewrite.TitleGuardClause:
		return cfg.Transforms.GuardClauseEnabled()
	case rewrite.TitleInvert:
		return cfg.Transforms.InvertEnabled()
	case rewrite.TitleExpand:
		return cfg.Transforms.ExpandEnabled()
	}
	return false
}

// printPreview writes a before/after view of each edit to stdout.
func printPreview(cmd *cobra.Command, edits []types.Edit) {
	out := cmd.OutOrStdout()
	for _, e := range edits {
		fmt.Fprintf(out, "%s:%d:%d: %s\n", e.File, e.StartPos.Line, e.StartPos.Column, e.Description)
		fmt.Fprintln(out, "--- before")
		fmt.Fprintln(out, e.OldText)
		fmt.Fprintln(out, "+++ after")
		fmt.Fprintln(out, e.NewText)
		fmt.Fprintln(out)
	}
}

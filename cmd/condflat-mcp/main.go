package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mamaar/condflat/internal/config"
	"github.com/mamaar/condflat/internal/logging"
	"github.com/mamaar/condflat/pkg/rewrite"
	"github.com/mamaar/condflat/pkg/types"
)

func main() {
	var (
		portFlag    = flag.Int("port", 0, "TCP port to listen on (0 for stdio)")
		debugFlag   = flag.Bool("debug", false, "Enable debug logging")
		versionFlag = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Println("condflat-mcp v0.1.0")
		fmt.Println("Model Context Protocol server for conditional flattening")
		os.Exit(0)
	}

	cfg, err := config.Discover(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "condflat-mcp: %v\n", err)
		os.Exit(1)
	}

	level := cfg.LogLevel
	if *debugFlag {
		level = "debug"
	}
	logger := logging.New(level)

	mcpServer := server.NewMCPServer(
		"condflat-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	proposer := rewrite.NewProposer(cfg.Indent.Unit())

	addTransformTool(mcpServer,
		"guard_clause_simplify",
		"Flatten the if/else at a position into a guard clause plus fallthrough statements",
		proposer.ProposeGuardClauseSimplify)
	addTransformTool(mcpServer,
		"invert_and_simplify",
		"Invert the condition of the if/else at a position and flatten it into a guard clause",
		proposer.ProposeInvertAndSimplify)
	addTransformTool(mcpServer,
		"expand_conditional",
		"Expand the ternary expression at a position into an equivalent if/else statement tree",
		proposer.ProposeConditionalExpansion)
	addListTool(mcpServer, proposer)

	if *portFlag == 0 {
		if err := server.ServeStdio(mcpServer); err != nil {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	} else {
		httpServer := server.NewStreamableHTTPServer(mcpServer)
		logger.Info("starting http server", "port", *portFlag)
		if err := httpServer.Start(fmt.Sprintf(":%d", *portFlag)); err != nil {
			logger.Error("http server failed", "err", err)
			os.Exit(1)
		}
	}
}

// addTransformTool registers one position-based transform as an MCP tool.
func addTransformTool(
	s *server.MCPServer,
	name, description string,
	propose func(*rewrite.Document, int) []types.Edit,
) {
	tool := mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the source file"),
		),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("1-based line of the cursor position"),
		),
		mcp.WithNumber("column",
			mcp.Required(),
			mcp.Description("1-based column of the cursor position"),
		),
		mcp.WithBoolean("apply",
			mcp.Description("Apply the edit to the file instead of returning a preview"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		file, ok := args["file"].(string)
		if !ok {
			return mcp.NewToolResultError("file is required"), nil
		}
		line, ok := args["line"].(float64)
		if !ok {
			return mcp.NewToolResultError("line is required"), nil
		}
		column, ok := args["column"].(float64)
		if !ok {
			return mcp.NewToolResultError("column is required"), nil
		}
		apply, _ := args["apply"].(bool)

		doc, offset, err := loadDocument(file, types.Position{Line: int(line), Column: int(column)})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		edits := propose(doc, offset)
		if len(edits) == 0 {
			return mcp.NewToolResultText("No applicable transform at this position."), nil
		}

		if apply {
			if err := rewrite.NewApplier().Apply(edits); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Error applying edit: %v", err)), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("Applied %q to %s.", edits[0].Description, file)), nil
		}

		content := fmt.Sprintf("%s at %s:%d:%d\n\nBefore:\n%s\n\nAfter:\n%s",
			edits[0].Description, file, edits[0].StartPos.Line, edits[0].StartPos.Column,
			edits[0].OldText, edits[0].NewText)
		return mcp.NewToolResultText(content), nil
	})
}

// addListTool registers the whole-file scan as an MCP tool.
func addListTool(s *server.MCPServer, proposer *rewrite.Proposer) {
	tool := mcp.NewTool("list_opportunities",
		mcp.WithDescription("List every position in a file where a condflat transform applies"),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the source file"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		file, ok := args["file"].(string)
		if !ok {
			return mcp.NewToolResultError("file is required"), nil
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error reading file: %v", err)), nil
		}
		doc, err := rewrite.ParseDocument(file, string(content))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error parsing file: %v", err)), nil
		}

		plan := rewrite.BuildPlan(proposer.ListOpportunities(doc))
		if plan.Empty() {
			return mcp.NewToolResultText("No applicable transforms in this file."), nil
		}

		text := fmt.Sprintf("Found %d applicable transforms:", len(plan.Edits))
		for _, e := range plan.Edits {
			text += fmt.Sprintf("\n- %s:%d:%d: %s", e.File, e.StartPos.Line, e.StartPos.Column, e.Description)
		}
		return mcp.NewToolResultText(text), nil
	})
}

// loadDocument reads and parses a file and converts the position to an offset.
func loadDocument(file string, pos types.Position) (*rewrite.Document, int, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", file, err)
	}
	doc, err := rewrite.ParseDocument(file, string(content))
	if err != nil {
		return nil, 0, err
	}
	offset, err := doc.Src.OffsetAt(pos)
	if err != nil {
		return nil, 0, err
	}
	return doc, offset, nil
}

// Package lsp implements a minimal LSP server surfacing the condflat
// transforms as code actions. The server keeps an in-memory overlay of open
// documents and re-parses the current text on every request; no tree is
// cached across edits.
package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/mamaar/condflat/pkg/rewrite"
	"github.com/mamaar/condflat/pkg/types"
)

// Server represents the LSP server.
type Server struct {
	mu          sync.RWMutex
	overlays    map[string]string // uri -> current text
	proposer    *rewrite.Proposer
	logger      *log.Logger
	initialized bool
	shutdown    bool
}

// NewServer creates a new LSP server instance. indent is the indentation
// unit used when printing replacement text.
func NewServer(indent string, logger *log.Logger) *Server {
	return &Server{
		overlays: make(map[string]string),
		proposer: rewrite.NewProposer(indent),
		logger:   logger,
	}
}

// Start serves over stdio when port is zero, TCP otherwise.
func (s *Server) Start(ctx context.Context, port int) error {
	if port == 0 {
		return s.serve(ctx, os.Stdin, os.Stdout)
	}
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	defer listener.Close()

	s.logger.Info("lsp server listening", "port", port)
	for {
		conn, err := listener.Accept()
		if err != nil {
			s.logger.Error("failed to accept connection", "err", err)
			continue
		}
		go func() {
			defer conn.Close()
			if err := s.serve(ctx, conn, conn); err != nil && err != io.EOF {
				s.logger.Error("connection error", "err", err)
			}
		}()
	}
}

func (s *Server) serve(ctx context.Context, reader io.Reader, writer io.Writer) error {
	conn := NewConnection(reader, writer)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		message, err := conn.ReadMessage()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		response, err := s.dispatch(message)
		if err != nil {
			s.logger.Error("dispatch failed", "method", message.Method, "err", err)
			continue
		}
		if response == nil {
			continue // notification
		}
		if err := conn.WriteMessage(response); err != nil {
			return err
		}
	}
}

func (s *Server) dispatch(message *Message) (*Message, error) {
	s.logger.Debug("request", "method", message.Method, "id", message.ID)

	switch message.Method {
	case "initialize":
		return s.handleInitialize(message)
	case "initialized":
		return nil, nil
	case "shutdown":
		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()
		return s.successResponse(message.ID, nil)
	case "exit":
		s.mu.RLock()
		clean := s.shutdown
		s.mu.RUnlock()
		if clean {
			os.Exit(0)
		}
		os.Exit(1)
		return nil, nil
	case "textDocument/didOpen":
		return nil, s.handleDidOpen(message)
	case "textDocument/didChange":
		return nil, s.handleDidChange(message)
	case "textDocument/didClose":
		return nil, s.handleDidClose(message)
	case "textDocument/codeAction":
		return s.handleCodeAction(message)
	default:
		if message.ID == nil {
			return nil, nil // unknown notification, ignore
		}
		return s.errorResponse(message.ID, CodeInvalidRequest,
			fmt.Sprintf("unsupported method %q", message.Method), nil)
	}
}

func (s *Server) handleInitialize(message *Message) (*Message, error) {
	var params InitializeParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return s.errorResponse(message.ID, CodeInvalidParams, "invalid params", err)
	}

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()

	if params.ClientInfo != nil {
		s.logger.Info("client connected", "name", params.ClientInfo.Name, "version", params.ClientInfo.Version)
	}

	return s.successResponse(message.ID, InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
			},
			CodeActionProvider: &CodeActionOptions{
				CodeActionKinds: []string{
					"refactor.rewrite",
					"refactor.rewrite.guardClause",
					"refactor.rewrite.invertCondition",
					"refactor.rewrite.expandConditional",
				},
			},
		},
		ServerInfo: &ServerInfo{Name: "condflat-lsp"},
	})
}

func (s *Server) handleDidOpen(message *Message) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return err
	}
	s.mu.Lock()
	s.overlays[params.TextDocument.URI] = params.TextDocument.Text
	s.mu.Unlock()
	return nil
}

func (s *Server) handleDidChange(message *Message) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return err
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// Full sync: the last change carries the complete new text.
	s.mu.Lock()
	s.overlays[params.TextDocument.URI] = params.ContentChanges[len(params.ContentChanges)-1].Text
	s.mu.Unlock()
	return nil
}

func (s *Server) handleDidClose(message *Message) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.overlays, params.TextDocument.URI)
	s.mu.Unlock()
	return nil
}

func (s *Server) handleCodeAction(message *Message) (*Message, error) {
	var params CodeActionParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return s.errorResponse(message.ID, CodeInvalidParams, "invalid params", err)
	}

	text, ok := s.documentText(params.TextDocument.URI)
	if !ok {
		return s.successResponse(message.ID, []CodeAction{})
	}

	doc, err := rewrite.ParseDocument(uriToPath(params.TextDocument.URI), text)
	if err != nil {
		// An unparseable buffer offers no actions; typing mid-edit is normal.
		s.logger.Debug("parse failed", "uri", params.TextDocument.URI, "err", err)
		return s.successResponse(message.ID, []CodeAction{})
	}

	offset, err := doc.Src.OffsetAt(types.Position{
		Line:   params.Range.Start.Line + 1,
		Column: params.Range.Start.Character + 1,
	})
	if err != nil {
		return s.successResponse(message.ID, []CodeAction{})
	}

	edits := s.proposer.ProposeAll(doc, offset)
	actions := make([]CodeAction, 0, len(edits))
	for _, e := range edits {
		actions = append(actions, CodeAction{
			Title: e.Description,
			Kind:  actionKind(e.Description),
			Edit: &WorkspaceEdit{
				Changes: map[string][]TextEdit{
					params.TextDocument.URI: {editToTextEdit(e)},
				},
			},
		})
	}
	return s.successResponse(message.ID, actions)
}

// documentText returns the overlay text for an open document, falling back
// to the file on disk.
func (s *Server) documentText(uri string) (string, bool) {
	s.mu.RLock()
	text, ok := s.overlays[uri]
	s.mu.RUnlock()
	if ok {
		return text, true
	}
	content, err := os.ReadFile(uriToPath(uri))
	if err != nil {
		return "", false
	}
	return string(content), true
}

func actionKind(title string) string {
	switch title {
	case rewrite.TitleGuardClause:
		return "refactor.rewrite.guardClause"
	case rewrite.TitleInvert:
		return "refactor.rewrite.invertCondition"
	case rewrite.TitleExpand:
		return "refactor.rewrite.expandConditional"
	}
	return "refactor.rewrite"
}

// editToTextEdit converts a proposed edit to an LSP text edit (0-based).
func editToTextEdit(e types.Edit) TextEdit {
	return TextEdit{
		Range: Range{
			Start: Position{Line: e.StartPos.Line - 1, Character: e.StartPos.Column - 1},
			End:   Position{Line: e.EndPos.Line - 1, Character: e.EndPos.Column - 1},
		},
		NewText: e.NewText,
	}
}

func uriToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

func (s *Server) successResponse(id interface{}, result interface{}) (*Message, error) {
	return &Message{JSONRPC: "2.0", ID: id, Result: result}, nil
}

func (s *Server) errorResponse(id interface{}, code int, msg string, err error) (*Message, error) {
	respErr := &ResponseError{Code: code, Message: msg}
	if err != nil {
		respErr.Data = err.Error()
	}
	return &Message{JSONRPC: "2.0", ID: id, Error: respErr}, nil
}

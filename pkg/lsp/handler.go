package lsp

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"sync"
	"unicode"

	"github.com/creachadair/jrpc2"
)

// NewHandler creates the JSON-RPC method assigner for the language server.
func NewHandler(ctx context.Context) *langHandler {
	return &langHandler{
		files: make(map[DocumentURI]*File),
	}
}

type langHandler struct {
	filesL sync.Mutex
	files  map[DocumentURI]*File

	srv *jrpc2.Server

	shutdown bool
}

// File is an open document.
type File struct {
	LanguageID string
	Text       string
	Version    int
}

// SetServer gives the handler the server it is running under, so that
// `exit` can stop it.
func (h *langHandler) SetServer(srv *jrpc2.Server) {
	h.srv = srv
}

// Assign implements jrpc2.Assigner.
func (h *langHandler) Assign(ctx context.Context, method string) jrpc2.Handler {
	slog.DebugContext(ctx, "assign", "method", method)

	switch method {
	case "initialize":
		return h.handleInitialize
	case "initialized":
		return h.handleInitialized
	case "shutdown":
		return h.handleShutdown
	case "exit":
		return h.handleExit
	case "textDocument/didOpen":
		return h.handleTextDocumentDidOpen
	case "textDocument/didChange":
		return h.handleTextDocumentDidChange
	case "textDocument/didClose":
		return h.handleTextDocumentDidClose
	case "textDocument/formatting":
		return h.handleTextDocumentFormatting
	}
	return nil
}

func isWindowsDrivePath(path string) bool {
	if len(path) < 4 {
		return false
	}
	return unicode.IsLetter(rune(path[0])) && path[1] == ':'
}

func isWindowsDriveURI(uri string) bool {
	if len(uri) < 4 {
		return false
	}
	return uri[0] == '/' && unicode.IsLetter(rune(uri[1])) && uri[2] == ':'
}

func fromURI(uri DocumentURI) (string, error) {
	u, err := url.ParseRequestURI(string(uri))
	if err != nil {
		return "", err
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("only file URIs are supported, got %v", u.Scheme)
	}
	if isWindowsDriveURI(u.Path) {
		u.Path = u.Path[1:]
	}
	return u.Path, nil
}

func toURI(path string) DocumentURI {
	if isWindowsDrivePath(path) {
		path = "/" + path
	}
	return DocumentURI((&url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}).String())
}

func (h *langHandler) openFile(uri DocumentURI, languageID string, version int, text string) {
	h.filesL.Lock()
	defer h.filesL.Unlock()
	h.files[uri] = &File{
		LanguageID: languageID,
		Text:       text,
		Version:    version,
	}
}

func (h *langHandler) updateFile(uri DocumentURI, text string, version int) error {
	h.filesL.Lock()
	defer h.filesL.Unlock()
	f, ok := h.files[uri]
	if !ok {
		return fmt.Errorf("document not found: %v", uri)
	}
	f.Text = text
	f.Version = version
	return nil
}

func (h *langHandler) closeFile(uri DocumentURI) {
	h.filesL.Lock()
	defer h.filesL.Unlock()
	delete(h.files, uri)
}

// file returns a copy of the open document, or false.
func (h *langHandler) file(uri DocumentURI) (File, bool) {
	h.filesL.Lock()
	defer h.filesL.Unlock()
	f, ok := h.files[uri]
	if !ok {
		return File{}, false
	}
	return *f, true
}

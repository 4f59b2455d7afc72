package lsp

import (
	"context"
	"log/slog"
	"path/filepath"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/creachadair/jrpc2"

	"github.com/vito/kitefmt/pkg/format"
)

func (h *langHandler) handleTextDocumentFormatting(ctx context.Context, req *jrpc2.Request) (any, error) {
	if !req.HasParams() {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "missing parameters")
	}

	var params DocumentFormattingParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}

	f, ok := h.file(params.TextDocument.URI)
	if !ok {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "document not found: %v", params.TextDocument.URI)
	}

	opts := h.options(ctx, params.TextDocument.URI)
	if params.Options.InsertSpaces && params.Options.TabSize > 0 {
		opts.IndentSize = params.Options.TabSize
	}

	formatted := format.Format([]byte(f.Text), opts)
	if formatted == f.Text {
		return []TextEdit{}, nil
	}

	// replace the entire document
	return []TextEdit{
		{
			Range: Range{
				Start: Position{Line: 0, Character: 0},
				End:   documentEnd(f.Text),
			},
			NewText: formatted,
		},
	}, nil
}

// options loads the kitefmt.toml that applies to the document, falling back
// to the defaults for documents without a file path.
func (h *langHandler) options(ctx context.Context, uri DocumentURI) format.Options {
	path, err := fromURI(uri)
	if err != nil {
		return format.DefaultOptions()
	}
	config, opts, err := format.FindConfig(filepath.Dir(path))
	if err != nil {
		slog.WarnContext(ctx, "failed to load config", "uri", uri, "error", err)
		return format.DefaultOptions()
	}
	if config != "" {
		slog.DebugContext(ctx, "using config", "path", config)
	}
	return opts
}

// documentEnd returns the position just past the last character of text.
func documentEnd(text string) Position {
	var end Position
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		text = text[size:]
		if r == '\n' {
			end.Line++
			end.Character = 0
			continue
		}
		end.Character += utf16.RuneLen(r)
	}
	return end
}

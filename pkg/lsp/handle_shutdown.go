package lsp

import (
	"context"
	"log/slog"

	"github.com/creachadair/jrpc2"
)

func (h *langHandler) handleShutdown(ctx context.Context, req *jrpc2.Request) (any, error) {
	h.filesL.Lock()
	h.shutdown = true
	h.files = make(map[DocumentURI]*File)
	h.filesL.Unlock()
	return nil, nil
}

func (h *langHandler) handleExit(ctx context.Context, req *jrpc2.Request) (any, error) {
	h.filesL.Lock()
	clean := h.shutdown
	h.filesL.Unlock()
	if !clean {
		slog.WarnContext(ctx, "exit without shutdown")
	}
	if h.srv != nil {
		go h.srv.Stop()
	}
	return nil, nil
}

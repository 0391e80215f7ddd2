package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/taigrr/seqindex/internal/config"
	"github.com/taigrr/seqindex/internal/exporter"
	"github.com/taigrr/seqindex/internal/preprocess"
	"github.com/taigrr/seqindex/internal/types"
)

// toolHandlers serves the MCP tools. Empty inputs fall back to settings.
type toolHandlers struct {
	settings config.Config
	exporter *exporter.Service
	logger   *slog.Logger
}

func newToolHandlers(cfg config.Config, logger *slog.Logger) *toolHandlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &toolHandlers{
		settings: cfg,
		exporter: exporter.New(logger),
		logger:   logger,
	}
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve scan, export and preprocess as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, opts)
		},
	}
}

func runServer(cmd *cobra.Command, opts *options) error {
	cfg, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}

	// stdout carries the protocol
	h := newToolHandlers(cfg, newLogger(cmd.ErrOrStderr(), opts.verbose))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "seqindex",
		Version: version,
	}, nil)

	registerTools(server, h)

	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}

	return nil
}

func (h *toolHandlers) handleScan(ctx context.Context, req *mcp.CallToolRequest, input ScanInput) (*mcp.CallToolResult, ScanOutput, error) {
	directory := orDefault(input.Directory, h.settings.Directory)
	suffix := orDefault(input.Suffix, h.settings.Suffix)

	entries, err := h.exporter.Scan(directory, suffix)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ScanOutput{}, err
	}

	if entries == nil {
		entries = []types.ManifestEntry{}
	}
	return nil, ScanOutput{Entries: entries, Count: len(entries)}, nil
}

func (h *toolHandlers) handleExport(ctx context.Context, req *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
	result, err := h.exporter.Export(types.ExportParams{
		Directory: orDefault(input.Directory, h.settings.Directory),
		Suffix:    orDefault(input.Suffix, h.settings.Suffix),
		PathsOut:  orDefault(input.PathsOut, h.settings.PathsOut),
		NamesOut:  orDefault(input.NamesOut, h.settings.NamesOut),
	})
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ExportOutput{}, err
	}

	return nil, ExportOutput{
		Count:    result.Count,
		PathsOut: result.PathsOut,
		NamesOut: result.NamesOut,
	}, nil
}

func (h *toolHandlers) handlePreprocess(ctx context.Context, req *mcp.CallToolRequest, input PreprocessInput) (*mcp.CallToolResult, PreprocessOutput, error) {
	recordSize := h.settings.Preprocess.RecordSize
	if input.RecordSize != 0 {
		recordSize = input.RecordSize
	}

	svc, err := preprocess.New(recordSize, h.logger)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, PreprocessOutput{}, err
	}

	result, err := svc.Preprocess(types.PreprocessParams{
		PathsIn:   orDefault(input.PathsIn, h.settings.PathsOut),
		LengthOut: orDefault(input.LengthOut, h.settings.Preprocess.LengthOut),
		DataOut:   orDefault(input.DataOut, h.settings.Preprocess.DataOut),
	})
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, PreprocessOutput{}, err
	}

	return nil, PreprocessOutput{
		Records:    result.Records,
		TotalBases: result.TotalBases,
		RecordSize: svc.RecordSize(),
	}, nil
}

// orDefault trims value and falls back to def when nothing is left.
func orDefault(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}

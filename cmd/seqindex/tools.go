package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/seqindex/internal/types"
)

type (
	// ScanInput contains parameters for listing matching entries.
	ScanInput struct {
		Directory string `json:"directory,omitempty" jsonschema:"Directory to scan (default: configured directory)"`
		Suffix    string `json:"suffix,omitempty" jsonschema:"Case-sensitive name suffix (default: configured suffix)"`
	}

	// ScanOutput contains the matching entries in listing order.
	ScanOutput struct {
		Entries []types.ManifestEntry `json:"entries"`
		Count   int                   `json:"count"`
	}

	// ExportInput contains parameters for writing the manifests.
	ExportInput struct {
		Directory string `json:"directory,omitempty" jsonschema:"Directory to scan (default: configured directory)"`
		Suffix    string `json:"suffix,omitempty" jsonschema:"Case-sensitive name suffix (default: configured suffix)"`
		PathsOut  string `json:"pathsOut,omitempty" jsonschema:"Output file for joined paths (default: seq_path.txt)"`
		NamesOut  string `json:"namesOut,omitempty" jsonschema:"Output file for stripped names (default: seq_name.txt)"`
	}

	// ExportOutput contains the result of writing the manifests.
	ExportOutput struct {
		Count    int    `json:"count"`
		PathsOut string `json:"pathsOut"`
		NamesOut string `json:"namesOut"`
	}

	// PreprocessInput contains parameters for packing sequences.
	PreprocessInput struct {
		PathsIn    string `json:"pathsIn,omitempty" jsonschema:"Paths manifest to read (default: configured paths output)"`
		LengthOut  string `json:"lengthOut,omitempty" jsonschema:"Output file for sequence lengths (default: length.data)"`
		DataOut    string `json:"dataOut,omitempty" jsonschema:"Output file for packed records (default: seq.data)"`
		RecordSize int    `json:"recordSize,omitempty" jsonschema:"Bytes per packed record (default: configured record size)"`
	}

	// PreprocessOutput contains the result of packing sequences.
	PreprocessOutput struct {
		Records    int   `json:"records"`
		TotalBases int64 `json:"totalBases"`
		RecordSize int   `json:"recordSize"`
	}
)

func registerTools(server *mcp.Server, h *toolHandlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scan",
		Description: "List the entries of a directory whose name ends with the suffix, with joined path and stripped name. Does not write anything.",
	}, h.handleScan)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export",
		Description: "Write the paths and names manifests for the matching entries of a directory. Existing manifest files are overwritten.",
	}, h.handleExport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preprocess",
		Description: "Pack the sequences named in a paths manifest into fixed-size zero-padded records, with one length per line in a companion file.",
	}, h.handlePreprocess)
}

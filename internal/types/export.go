// Package types defines the data structures shared by the services, the CLI
// and the MCP tools.
package types

type (
	// ExportParams contains parameters for exporting a directory manifest.
	ExportParams struct {
		Directory string `json:"directory"`
		Suffix    string `json:"suffix"`
		PathsOut  string `json:"pathsOut"`
		NamesOut  string `json:"namesOut"`
	}

	// ExportResult contains the outcome of a successful export.
	ExportResult struct {
		Count    int    `json:"count"`
		PathsOut string `json:"pathsOut"`
		NamesOut string `json:"namesOut"`
	}

	// ManifestEntry is one exported entry: line i of both manifests.
	ManifestEntry struct {
		Path string `json:"path"`
		Name string `json:"name"`
	}
)

package types

type (
	// PreprocessParams contains parameters for packing sequences listed in a
	// paths manifest.
	PreprocessParams struct {
		PathsIn   string `json:"pathsIn"`
		LengthOut string `json:"lengthOut"`
		DataOut   string `json:"dataOut"`
	}

	// PreprocessResult contains the outcome of a successful preprocess run.
	PreprocessResult struct {
		Records    int   `json:"records"`
		TotalBases int64 `json:"totalBases"`
		RecordSize int   `json:"recordSize"`
	}
)

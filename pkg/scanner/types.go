package scanner

// ScanConfig controls which widget sources are read.
type ScanConfig struct {
	// Include glob patterns, relative to the scan root.
	Include []string
	// Exclude glob patterns. Matching directories are skipped entirely.
	Exclude []string
	// Workers bounds concurrent parsing. <= 0 selects a CPU-based default.
	Workers int
}

// DefaultScanConfig matches JSX and TSX sources and skips tests, stories,
// build output and dependencies.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Include: []string{
			"**/*.tsx",
			"**/*.jsx",
		},
		Exclude: []string{
			"node_modules/**",
			".git/**",
			"dist/**",
			"build/**",
			".next/**",
			"coverage/**",
			"**/__tests__/**",
			"**/*.test.*",
			"**/*.spec.*",
			"**/*.stories.*",
			"**/*.story.*",
		},
	}
}

// VariantSet is one cva() configuration found in a source file.
type VariantSet struct {
	// VariableName is the identifier the cva() result is assigned to,
	// e.g. "buttonVariants". Empty when the call is not assigned.
	VariableName string
	// Variants maps a variant key ("variant", "size", ...) to its allowed
	// values in source order.
	Variants map[string][]string
	// Defaults maps a variant key to its defaultVariants value.
	Defaults map[string]string
	// Order lists the variant keys in source order.
	Order []string
}

// Match records one widget file applied to one catalog entry.
type Match struct {
	File     string `json:"file"`
	Category string `json:"category"`
	Entry    string `json:"entry"`
	Variants int    `json:"variants"`
	Sizes    int    `json:"sizes"`
	// Described is set when the entry's empty description was filled from
	// the component's JSDoc.
	Described bool `json:"described,omitempty"`
}

// Report summarises a Scan.
type Report struct {
	FilesScanned int      `json:"files_scanned"`
	Matches      []Match  `json:"matches"`
	Unmatched    []string `json:"unmatched"`
	Errors       []string `json:"errors,omitempty"`
}

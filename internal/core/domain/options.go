package domain

// Options is the global compiler configuration for a build session.
type Options struct {
	// Version is the configuration schema version.
	Version string
	// RootDir is the directory compilation is rooted at.
	RootDir string
	// OutDir is the directory emitted files are written under.
	OutDir string
	// Preamble optionally names a declaration unit resolved once per
	// session before the first compilation.
	Preamble string
}

// DefaultOptions returns the options used when no configuration file is
// present.
func DefaultOptions() *Options {
	return &Options{
		Version: "1",
		RootDir: ".",
		OutDir:  "dist",
	}
}

// Validate checks the options and returns configuration diagnostics. These
// surface through the same diagnostics path as syntactic and semantic
// records.
func (o *Options) Validate() []Diagnostic {
	var diags []Diagnostic

	if o.Version != "" && o.Version != "1" {
		diags = append(diags, Diagnostic{
			Kind:    DiagOptions,
			Message: "unsupported configuration version " + o.Version,
		})
	}
	if o.OutDir == "" {
		diags = append(diags, Diagnostic{
			Kind:    DiagOptions,
			Message: "outDir must not be empty",
		})
	}
	if o.Preamble != "" && !IsDeclarationPath(o.Preamble) {
		diags = append(diags, Diagnostic{
			Kind:    DiagOptions,
			Message: "preamble must be a declaration unit (" + ExtDeclaration + "): " + o.Preamble,
		})
	}

	return diags
}

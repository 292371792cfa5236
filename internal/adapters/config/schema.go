package config

// Weftfile represents the structure of the weft.yaml configuration file.
type Weftfile struct {
	Version  string `yaml:"version"`
	Root     string `yaml:"root"`
	OutDir   string `yaml:"outDir"`
	Preamble string `yaml:"preamble"`
}

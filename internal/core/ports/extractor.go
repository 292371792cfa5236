package ports

// ImportExtractor returns the raw module specifiers referenced by a unit,
// in source order. How the specifiers are located inside the syntax is the
// extractor's concern; the resolution engine treats it as a black box.
//
//go:generate go run go.uber.org/mock/mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type ImportExtractor interface {
	Imports(path, text string) ([]string, error)
}

package intelligence

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ForbiddenPrefixes names the kernel packages a reasoning package may not
// import. A reasoning package that imports any of these directly has
// crossed from proposing into deciding, which is exactly what this check
// exists to catch at build time rather than leaving it to code review.
// Only the package's own import declarations are checked; packages it
// imports are not followed, so a kernel package reached through an
// intermediate import is not reported.
var ForbiddenPrefixes = []string{
	"mek/internal/guard",
	"mek/internal/authority",
	"mek/internal/snapshot",
	"mek/internal/composition",
	"mek/internal/friction",
	"mek/internal/failure",
	"mek/internal/evidence",
	"mek/internal/primitives",
}

// Violation records one forbidden import found in one file.
type Violation struct {
	File       string
	Line       int
	ImportPath string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d: forbidden import %q", v.File, v.Line, v.ImportPath)
}

// VerifyImportBoundary parses every .go file directly under dir (non-
// recursively; reasoning packages are expected to be single-directory)
// and reports every import that matches a forbidden prefix.
func VerifyImportBoundary(dir string) ([]Violation, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("intelligence: read dir: %w", err)
	}

	var violations []Violation
	fset := token.NewFileSet()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return nil, fmt.Errorf("intelligence: parse %s: %w", path, err)
		}
		violations = append(violations, violationsIn(fset, file)...)
	}
	return violations, nil
}

func violationsIn(fset *token.FileSet, file *ast.File) []Violation {
	var out []Violation
	for _, imp := range file.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		for _, forbidden := range ForbiddenPrefixes {
			if importPath == forbidden || strings.HasPrefix(importPath, forbidden+"/") {
				pos := fset.Position(imp.Pos())
				out = append(out, Violation{File: pos.Filename, Line: pos.Line, ImportPath: importPath})
			}
		}
	}
	return out
}

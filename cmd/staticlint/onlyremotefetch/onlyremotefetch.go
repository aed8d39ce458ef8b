// Package onlyremotefetch defines an analyzer that keeps upstream HTTP
// traffic inside the remote seed package: the collections are seeded
// exactly once, and any other package reaching for an HTTP client is a
// bug waiting to re-synchronize state that must stay session-local.
package onlyremotefetch

import (
	"go/ast"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// remotePackageSuffix is the one package allowed to build HTTP clients.
const remotePackageSuffix = "internal/remote"

// Analyzer reports construction of HTTP clients (resty.New, the
// net/http convenience calls) outside the remote seed package.
var Analyzer = &analysis.Analyzer{
	Name: "onlyremotefetch",
	Doc:  "forbids HTTP client construction outside the remote seed package",
	Run:  run,
}

var forbiddenHTTPCalls = map[string]bool{
	"Get":      true,
	"Post":     true,
	"PostForm": true,
	"Head":     true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if strings.HasSuffix(pass.Pkg.Path(), remotePackageSuffix) {
		return nil, nil
	}

	for _, file := range pass.Files {
		filename := pass.Fset.File(file.Pos()).Name()
		if isTestFile(filename) || isGoBuildCacheFile(filename) {
			continue
		}

		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			ident, ok := sel.X.(*ast.Ident)
			if !ok {
				return true
			}

			switch {
			case ident.Name == "resty" && sel.Sel.Name == "New":
				pass.Reportf(call.Pos(), "resty clients belong to the remote seed package only")
			case ident.Name == "http" && forbiddenHTTPCalls[sel.Sel.Name]:
				pass.Reportf(call.Pos(), "direct http %s call outside the remote seed package", sel.Sel.Name)
			}

			return true
		})
	}

	return nil, nil
}

func isTestFile(path string) bool {
	return strings.HasSuffix(path, "_test.go")
}

func isGoBuildCacheFile(path string) bool {
	path = filepath.ToSlash(path)
	return strings.Contains(path, "/go-build/") || strings.Contains(path, `\go-build\`)
}

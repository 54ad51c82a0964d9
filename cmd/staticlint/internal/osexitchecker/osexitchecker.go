// Package osexitchecker reports direct os.Exit calls in the main function of package main.
package osexitchecker

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
)

var Analyzer = &analysis.Analyzer{
	Name: "osexitcheck",
	Doc:  "checks of calling os.Exit in main package main func",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		//nolint: nilnil // expected
		return nil, nil
	}

	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv != nil || fn.Name.Name != "main" || fn.Body == nil {
				continue
			}

			ast.Inspect(fn.Body, func(node ast.Node) bool {
				call, ok := node.(*ast.CallExpr)
				if !ok {
					return true
				}
				if selexpr, ok := call.Fun.(*ast.SelectorExpr); ok {
					if ident, ok := selexpr.X.(*ast.Ident); ok {
						if ident.Name == "os" && selexpr.Sel.Name == "Exit" {
							pass.Reportf(selexpr.Pos(), "calling os.Exit in main package main func")
						}
					}
				}
				return true
			})
		}
	}

	//nolint: nilnil // expected
	return nil, nil
}

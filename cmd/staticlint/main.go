// Command staticlint runs the project's static analysis suite:
// all staticcheck SA analyzers, selected stylecheck rules, the
// x/tools passes that matter for HTTP and context code, and osexitcheck.
//
//	go run ./cmd/staticlint ./...
package main

import (
	"strings"

	"github.com/rawen554/qrcodegen/cmd/staticlint/internal/osexitchecker"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/defers"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"
)

var styleChecks = map[string]bool{
	"ST1005": true, // error strings
	"ST1012": true, // error variable names
	"ST1019": true, // duplicate imports
}

func main() {
	analyzers := make([]*analysis.Analyzer, 0)

	for _, v := range staticcheck.Analyzers {
		if strings.HasPrefix(v.Analyzer.Name, "SA") {
			analyzers = append(analyzers, v.Analyzer)
		}
	}
	for _, v := range stylecheck.Analyzers {
		if styleChecks[v.Analyzer.Name] {
			analyzers = append(analyzers, v.Analyzer)
		}
	}

	analyzers = append(analyzers,
		osexitchecker.Analyzer,
		defers.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		nilness.Analyzer,
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
		unmarshal.Analyzer,
		unusedresult.Analyzer)

	multichecker.Main(
		analyzers...,
	)
}

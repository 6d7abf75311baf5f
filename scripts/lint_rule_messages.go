package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MessageIssue is a rule message that gives the user no documentation link.
type MessageIssue struct {
	File string
	Line int
	Name string
}

// FileStats tracks statistics for a single file.
type FileStats struct {
	Total     int
	Compliant int
	Issues    []MessageIssue
}

// linkHelpers are the calls that append a documentation link.
var linkHelpers = map[string]bool{"DocLink": true, "link": true}

func main() {
	fmt.Println("🔍 Rule Message Linter")
	fmt.Println()

	dirs := []string{"pkg/assembly", "pkg/changelog", "pkg/rules"}

	allStats := make(map[string]*FileStats)
	totalMessages := 0
	totalCompliant := 0

	for _, dir := range dirs {
		fmt.Printf("Analyzing rule messages in %s/...\n", dir)

		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
				return nil
			}
			stats, err := analyzeFile(path)
			if err != nil {
				return err
			}
			if stats.Total > 0 {
				allStats[path] = stats
				totalMessages += stats.Total
				totalCompliant += stats.Compliant
			}
			return nil
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error walking directory %s: %v\n", dir, err)
			os.Exit(1)
		}
	}

	fmt.Println()

	sortedFiles := make([]string, 0, len(allStats))
	for file := range allStats {
		sortedFiles = append(sortedFiles, file)
	}
	sort.Strings(sortedFiles)

	for _, file := range sortedFiles {
		stats := allStats[file]
		if len(stats.Issues) == 0 {
			fmt.Printf("✓ %s: %d/%d messages link to the docs\n", file, stats.Compliant, stats.Total)
			continue
		}
		fmt.Printf("✗ %s: %d/%d messages link to the docs\n", file, stats.Compliant, stats.Total)
		for _, issue := range stats.Issues {
			fmt.Printf("  - Line %d: %s has no documentation link\n", issue.Line, issue.Name)
		}
	}

	compliance := (totalCompliant * 100) / max(totalMessages, 1)
	fmt.Println()
	fmt.Println("📊 Summary:")
	fmt.Printf("  Rule messages: %d\n", totalMessages)
	fmt.Printf("  With documentation link: %d (%d%%)\n", totalCompliant, compliance)
	fmt.Println()

	threshold := 80
	if len(os.Args) > 1 {
		if _, err := fmt.Sscanf(os.Args[1], "%d", &threshold); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: invalid threshold value '%s', using default 80%%\n", os.Args[1])
			threshold = 80
		}
	}

	if compliance >= threshold {
		fmt.Printf("✅ Meets quality threshold (%d%%)\n", threshold)
		return
	}
	fmt.Printf("❌ Below quality threshold (%d%% < %d%%)\n", compliance, threshold)
	os.Exit(1)
}

// analyzeFile checks exported functions and variables named *Error,
// *Warning or *Message.
func analyzeFile(path string) (*FileStats, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, err
	}

	stats := &FileStats{}
	check := func(name string, pos token.Pos, body ast.Node) {
		if !ast.IsExported(name) || !isMessageName(name) || body == nil {
			return
		}
		stats.Total++
		if hasLink(body) {
			stats.Compliant++
			return
		}
		stats.Issues = append(stats.Issues, MessageIssue{File: path, Line: fset.Position(pos).Line, Name: name})
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil && returnsString(d) {
				check(d.Name.Name, d.Pos(), d.Body)
			}
		case *ast.GenDecl:
			if d.Tok != token.VAR {
				continue
			}
			for _, spec := range d.Specs {
				vs := spec.(*ast.ValueSpec)
				for i, name := range vs.Names {
					if i < len(vs.Values) {
						check(name.Name, name.Pos(), vs.Values[i])
					}
				}
			}
		}
	}
	return stats, nil
}

func isMessageName(name string) bool {
	return strings.HasSuffix(name, "Error") || strings.HasSuffix(name, "Warning") || strings.HasSuffix(name, "Message")
}

func returnsString(fn *ast.FuncDecl) bool {
	results := fn.Type.Results
	if results == nil || len(results.List) != 1 {
		return false
	}
	ident, ok := results.List[0].Type.(*ast.Ident)
	return ok && ident.Name == "string"
}

// hasLink reports whether n calls a link helper or embeds a URL literal.
func hasLink(n ast.Node) bool {
	found := false
	ast.Inspect(n, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.CallExpr:
			switch fun := x.Fun.(type) {
			case *ast.Ident:
				found = found || linkHelpers[fun.Name]
			case *ast.SelectorExpr:
				found = found || linkHelpers[fun.Sel.Name]
			}
		case *ast.BasicLit:
			found = found || (x.Kind == token.STRING && strings.Contains(x.Value, "https://"))
		}
		return !found
	})
	return found
}

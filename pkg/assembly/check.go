package assembly

import (
	"fmt"
	"strings"

	"github.com/githubnext/pkgvet/pkg/constants"
	"github.com/githubnext/pkgvet/pkg/logger"
)

var checkLog = logger.New("assembly:check")

const docsFile = "assemblies_definition_validation.html"

// Reporter receives the errors found by Check.
type Reporter interface {
	AddError(msg string)
}

// MoreThanOneDefinitionMessage is reported for a folder holding several
// asmdef/asmref files.
func MoreThanOneDefinitionMessage(dir string, names []string) string {
	return fmt.Sprintf("More than one assembly definition 'asmdef|asmref' file \"%s\" has been found in \"%s\" folder. Only one assembly definition is allowed per folder: %s",
		strings.Join(names, ", "), dir, constants.DocLink(docsFile, "more-than-one-assembly-definition"))
}

// ScriptWithoutDefinitionMessage is reported for scripts not covered by any
// asmdef/asmref in their folder or above.
func ScriptWithoutDefinitionMessage(dir string, names []string) string {
	return fmt.Sprintf("The following C# script(s) \"%s\" were found in \"%s\" folder, but no corresponding asmdef or asmref file was found in the folder or in ancestors folders: %s",
		strings.Join(names, ", "), dir, constants.DocLink(docsFile, "script-found-without-asmdef-or-asmref-associated"))
}

// DefinitionWithoutScriptMessage is reported for an asmdef/asmref with no
// script in its subtree.
func DefinitionWithoutScriptMessage(dir string, names []string) string {
	return fmt.Sprintf("Assembly definition file \"%s\" found in \"%s\" folder, but no C# script associated to it in this folder or in descendants folders: %s",
		strings.Join(names, ", "), dir, constants.DocLink(docsFile, "assembly-definition-found-without-script-associated"))
}

// Check scans root and reports assembly boundary problems to r.
func Check(root string, ignore []string, r Reporter) error {
	tree, err := Scan(root, ignore)
	if err != nil {
		return err
	}
	tree.Check(r)
	return nil
}

// walkState carries the number of boundary files still waiting for a
// script, shared by the whole walk.
type walkState struct {
	pending int
	report  Reporter
}

// Check reports assembly boundary problems in the tree to r.
func (t *Tree) Check(r Reporter) {
	st := &walkState{report: r}
	t.walk(t.Root, false, false, st)
	checkLog.Printf("Assembly check done, %d definitions left pending", st.pending)
}

// walk visits folder and its subtree. It returns true when the subtree holds
// scripts that sit in a folder without its own boundary file.
func (t *Tree) walk(folder Node, ancestorHasDefinition, insideSamples bool, st *walkState) bool {
	files := t.FilesIn(folder)
	insideSamples = insideSamples || folder.Name == samplesFolder

	var scripts, definitions []string
	for _, f := range files {
		switch {
		case isScript(f.Name):
			scripts = append(scripts, f.Name)
		case isDefinition(f.Name):
			definitions = append(definitions, f.Name)
		}
	}
	hasScripts := len(scripts) > 0
	coveredFromHere := ancestorHasDefinition || len(definitions) > 0
	uncoveredScripts := hasScripts && len(definitions) == 0 && !insideSamples

	if hasScripts {
		if coveredFromHere {
			if st.pending > 0 && uncoveredScripts {
				st.pending--
			}
		} else if !insideSamples {
			st.report.AddError(ScriptWithoutDefinitionMessage(t.DisplayPath(folder), scripts))
		}
	} else if len(definitions) > 0 {
		st.pending++
	}

	if len(definitions) > 1 {
		st.report.AddError(MoreThanOneDefinitionMessage(t.DisplayPath(folder), definitions))
	}

	for _, child := range t.FoldersIn(folder) {
		if t.walk(child, coveredFromHere, insideSamples, st) {
			uncoveredScripts = true
		}
	}

	if st.pending > 0 && !hasScripts && len(definitions) > 0 {
		if !uncoveredScripts {
			st.report.AddError(DefinitionWithoutScriptMessage(t.DisplayPath(folder), definitions))
			st.pending--
		} else {
			uncoveredScripts = false
		}
	}
	return uncoveredScripts
}

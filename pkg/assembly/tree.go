// Package assembly checks that C# scripts in a package are grouped into
// assemblies by asmdef/asmref files.
package assembly

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/githubnext/pkgvet/pkg/logger"
)

var treeLog = logger.New("assembly:tree")

const (
	samplesFolder = "Samples~"
	cvsFolder     = "cvs"

	scriptExt     = ".cs"
	definitionExt = ".asmdef"
	referenceExt  = ".asmref"
)

// Node is a file or folder found under the package root.
type Node struct {
	Path       string
	ParentPath string
	Name       string

	// Depth counts path segments below the package root; the root is 0.
	Depth int
}

// Tree is the result of a single scan of a package, indexed by depth.
type Tree struct {
	Root    Node
	folders map[int][]Node
	files   map[int][]Node
}

// Scan walks root once and records every folder and every script or
// assembly file. Hidden entries, CVS folders and "~" folders other than
// Samples~ are skipped, as is anything matching an ignore glob (relative to
// root, forward slashes).
func Scan(root string, ignore []string) (*Tree, error) {
	root = filepath.Clean(root)
	for _, pattern := range ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	t := &Tree{
		Root:    Node{Path: root, Name: filepath.Base(root)},
		folders: make(map[int][]Node),
		files:   make(map[int][]Node),
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if ignored(rel, ignore) {
			treeLog.Printf("Ignoring %s", rel)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		node := Node{
			Path:       path,
			ParentPath: filepath.Dir(path),
			Name:       name,
			Depth:      strings.Count(rel, "/") + 1,
		}
		if d.IsDir() {
			if excludedFolder(name) {
				return filepath.SkipDir
			}
			t.folders[node.Depth] = append(t.folders[node.Depth], node)
			return nil
		}
		if !strings.HasPrefix(name, ".") && isTracked(name) {
			t.files[node.Depth] = append(t.files[node.Depth], node)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	treeLog.Printf("Scanned %s: %d folder depths, %d file depths", root, len(t.folders), len(t.files))
	return t, nil
}

func ignored(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func excludedFolder(name string) bool {
	switch {
	case strings.HasPrefix(name, "."):
		return true
	case strings.EqualFold(name, cvsFolder):
		return true
	case strings.HasSuffix(name, "~"):
		return name != samplesFolder
	}
	return false
}

func isTracked(name string) bool {
	return isScript(name) || isDefinition(name)
}

func isScript(name string) bool {
	return hasExt(name, scriptExt)
}

func isDefinition(name string) bool {
	return hasExt(name, definitionExt) || hasExt(name, referenceExt)
}

func hasExt(name, ext string) bool {
	return len(name) >= len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext)
}

// FilesIn returns the tracked files directly inside folder.
func (t *Tree) FilesIn(folder Node) []Node {
	return childrenOf(t.files[folder.Depth+1], folder)
}

// FoldersIn returns the direct subfolders of folder.
func (t *Tree) FoldersIn(folder Node) []Node {
	return childrenOf(t.folders[folder.Depth+1], folder)
}

func childrenOf(level []Node, folder Node) []Node {
	var out []Node
	for _, n := range level {
		if n.ParentPath == folder.Path {
			out = append(out, n)
		}
	}
	return out
}

// DisplayPath is the folder path shown in messages: the package folder name
// followed by the path below it.
func (t *Tree) DisplayPath(folder Node) string {
	rel, err := filepath.Rel(t.Root.Path, folder.Path)
	if err != nil || rel == "." {
		return t.Root.Name
	}
	return t.Root.Name + "/" + filepath.ToSlash(rel)
}

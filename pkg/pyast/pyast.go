// Package pyast is a thin syntax layer over Python sources, built on
// tree-sitter. It exposes just the shapes the analyzers need: imports,
// identifier references, function and class declarations, nesting depth,
// and exception handlers.
package pyast

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// File is a parsed Python source file. Close must be called to release the
// underlying tree when the file is no longer needed.
type File struct {
	Path   string
	Source []byte
	Root   *sitter.Node

	tree *sitter.Tree
}

// Parse parses src as Python. Files with syntax errors are rejected so that
// callers can treat them as a per-file recoverable skip, matching how a
// strict parser would behave.
func Parse(ctx context.Context, path string, src []byte) (*File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	root := tree.RootNode()
	if root == nil || root.HasError() {
		tree.Close()
		return nil, fmt.Errorf("parse %s: syntax errors", path)
	}

	return &File{Path: path, Source: src, Root: root, tree: tree}, nil
}

// Close releases the parse tree.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Walk visits every node in the subtree rooted at n in document order.
// Returning false from fn prunes the subtree below the current node.
func Walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		Walk(n.Child(i), fn)
	}
}

// Line returns the 1-based line of a node.
func Line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// Import is one imported binding.
type Import struct {
	// Name is the local binding: "os" for `import os.path`, "loads" for
	// `from json import loads`, the alias when one is given.
	Name string
	// Line is the 1-based line of the import statement.
	Line int
	// Wildcard marks `from m import *`.
	Wildcard bool
}

// Imports returns every imported binding in the file. When the same name is
// imported more than once, the line of the first import is kept.
func (f *File) Imports() []Import {
	var out []Import
	seen := make(map[string]bool)

	add := func(name string, line int, wildcard bool) {
		if !wildcard && seen[name] {
			return
		}
		seen[name] = true
		out = append(out, Import{Name: name, Line: line, Wildcard: wildcard})
	}

	Walk(f.Root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "import_statement":
			line := Line(n)
			for i := 0; i < int(n.NamedChildCount()); i++ {
				c := n.NamedChild(i)
				switch c.Type() {
				case "dotted_name":
					// `import a.b` binds the root package name.
					add(rootName(c.Content(f.Source)), line, false)
				case "aliased_import":
					if alias := c.ChildByFieldName("alias"); alias != nil {
						add(alias.Content(f.Source), line, false)
					}
				}
			}
			return false
		case "import_from_statement":
			line := Line(n)
			module := n.ChildByFieldName("module_name")
			for i := 0; i < int(n.NamedChildCount()); i++ {
				c := n.NamedChild(i)
				if module != nil && c.Equal(module) {
					continue
				}
				switch c.Type() {
				case "dotted_name":
					add(rootName(c.Content(f.Source)), line, false)
				case "aliased_import":
					if alias := c.ChildByFieldName("alias"); alias != nil {
						add(alias.Content(f.Source), line, false)
					}
				case "wildcard_import":
					add("*", line, true)
				}
			}
			return false
		}
		return true
	})

	return out
}

// ImportedModules returns the set of module roots named by import statements,
// regardless of local binding or alias. Used for intent fingerprinting.
func (f *File) ImportedModules() map[string]bool {
	mods := make(map[string]bool)
	Walk(f.Root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "import_statement":
			for i := 0; i < int(n.NamedChildCount()); i++ {
				c := n.NamedChild(i)
				switch c.Type() {
				case "dotted_name":
					mods[rootName(c.Content(f.Source))] = true
				case "aliased_import":
					if name := c.ChildByFieldName("name"); name != nil {
						mods[rootName(name.Content(f.Source))] = true
					}
				}
			}
			return false
		case "import_from_statement":
			if module := n.ChildByFieldName("module_name"); module != nil {
				// Relative imports ("from . import x") have no module root.
				name := rootName(strings.TrimLeft(module.Content(f.Source), "."))
				if name != "" {
					mods[name] = true
				}
			}
			return false
		}
		return true
	})
	return mods
}

// References returns every identifier referenced outside of import
// statements. Attribute bases (`os` in `os.path.join`) are identifiers and
// are included naturally.
func (f *File) References() map[string]bool {
	refs := make(map[string]bool)
	Walk(f.Root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "import_statement", "import_from_statement":
			return false
		case "identifier":
			refs[n.Content(f.Source)] = true
		}
		return true
	})
	return refs
}

// Function is a function or method declaration.
type Function struct {
	Name         string
	Line         int
	Documented   bool
	Typed        bool
	NestingDepth int
}

// Class is a class declaration.
type Class struct {
	Name       string
	Line       int
	Documented bool
}

// Functions returns all function and method declarations in the file.
func (f *File) Functions() []Function {
	var out []Function
	Walk(f.Root, func(n *sitter.Node) bool {
		if n.Type() != "function_definition" {
			return true
		}
		fn := Function{Line: Line(n)}
		if name := n.ChildByFieldName("name"); name != nil {
			fn.Name = name.Content(f.Source)
		}
		body := n.ChildByFieldName("body")
		fn.Documented = hasDocstring(body, f.Source)
		fn.Typed = isTyped(n)
		fn.NestingDepth = maxNestingDepth(body)
		out = append(out, fn)
		return true
	})
	return out
}

// Classes returns all class declarations in the file.
func (f *File) Classes() []Class {
	var out []Class
	Walk(f.Root, func(n *sitter.Node) bool {
		if n.Type() != "class_definition" {
			return true
		}
		c := Class{Line: Line(n)}
		if name := n.ChildByFieldName("name"); name != nil {
			c.Name = name.Content(f.Source)
		}
		c.Documented = hasDocstring(n.ChildByFieldName("body"), f.Source)
		out = append(out, c)
		return true
	})
	return out
}

// ExceptHandler is one `except:` clause.
type ExceptHandler struct {
	Line int
	// NoOpBody is true when the handler body is a single pass statement or
	// a bare ellipsis.
	NoOpBody bool
}

// ExceptHandlers returns every exception handler in the file.
func (f *File) ExceptHandlers() []ExceptHandler {
	var out []ExceptHandler
	Walk(f.Root, func(n *sitter.Node) bool {
		if n.Type() != "except_clause" {
			return true
		}
		h := ExceptHandler{Line: Line(n)}
		if body := lastBlock(n); body != nil && body.NamedChildCount() == 1 {
			h.NoOpBody = isNoOp(body.NamedChild(0))
		}
		out = append(out, h)
		return true
	})
	return out
}

// hasDocstring reports whether the first statement of a block is a bare
// string literal.
func hasDocstring(body *sitter.Node, src []byte) bool {
	if body == nil || body.NamedChildCount() == 0 {
		return false
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return false
	}
	return first.NamedChild(0).Type() == "string"
}

// isTyped reports whether any parameter or the return value carries a type
// annotation.
func isTyped(fn *sitter.Node) bool {
	if fn.ChildByFieldName("return_type") != nil {
		return true
	}
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return false
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		switch params.NamedChild(i).Type() {
		case "typed_parameter", "typed_default_parameter":
			return true
		}
	}
	return false
}

// maxNestingDepth computes the deepest stack of loop, conditional, and
// context-manager constructs under a function body. Only those constructs
// increment depth; other statements are descended through transparently.
func maxNestingDepth(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	max := 0
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		d := maxNestingDepth(child)
		if nests(child.Type()) {
			d++
		}
		if d > max {
			max = d
		}
	}
	return max
}

func nests(nodeType string) bool {
	switch nodeType {
	case "if_statement", "elif_clause", "for_statement", "while_statement", "with_statement":
		return true
	}
	return false
}

func isNoOp(stmt *sitter.Node) bool {
	switch stmt.Type() {
	case "pass_statement":
		return true
	case "expression_statement":
		return stmt.NamedChildCount() == 1 && stmt.NamedChild(0).Type() == "ellipsis"
	}
	return false
}

// lastBlock returns the trailing block child of a node, if any.
func lastBlock(n *sitter.Node) *sitter.Node {
	for i := int(n.ChildCount()) - 1; i >= 0; i-- {
		if c := n.Child(i); c.Type() == "block" {
			return c
		}
	}
	return nil
}

func rootName(dotted string) string {
	if i := strings.IndexByte(dotted, '.'); i >= 0 {
		return dotted[:i]
	}
	return dotted
}

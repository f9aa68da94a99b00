package pyast_test

import (
	"context"
	"testing"

	"github.com/vouchdev/vouch/pkg/pyast"
)

func parse(t *testing.T, src string) *pyast.File {
	t.Helper()
	f, err := pyast.Parse(context.Background(), "test.py", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	t.Cleanup(f.Close)
	return f
}

func TestParseSyntaxError(t *testing.T) {
	_, err := pyast.Parse(context.Background(), "bad.py", []byte("def broken(:\n"))
	if err == nil {
		t.Fatal("expected error for invalid source")
	}
}

func TestImports(t *testing.T) {
	src := `import os
import os.path
import numpy as np
from json import loads
from collections import OrderedDict as OD
from pkg import *
`
	f := parse(t, src)
	imports := f.Imports()

	byName := make(map[string]pyast.Import)
	for _, imp := range imports {
		byName[imp.Name] = imp
	}

	if imp, ok := byName["os"]; !ok || imp.Line != 1 {
		t.Errorf("expected os imported at line 1, got %+v", imp)
	}
	if imp, ok := byName["np"]; !ok || imp.Line != 3 {
		t.Errorf("expected np imported at line 3, got %+v", imp)
	}
	if _, ok := byName["numpy"]; ok {
		t.Error("aliased import should bind the alias, not the module name")
	}
	if imp, ok := byName["loads"]; !ok || imp.Line != 4 {
		t.Errorf("expected loads imported at line 4, got %+v", imp)
	}
	if imp, ok := byName["OD"]; !ok || imp.Line != 5 {
		t.Errorf("expected OD imported at line 5, got %+v", imp)
	}
	if imp, ok := byName["*"]; !ok || !imp.Wildcard {
		t.Errorf("expected wildcard import, got %+v", imp)
	}
}

func TestImportsFirstLineWins(t *testing.T) {
	src := "import os\nimport os\n"
	f := parse(t, src)
	imports := f.Imports()
	if len(imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(imports))
	}
	if imports[0].Line != 1 {
		t.Errorf("expected line of first import (1), got %d", imports[0].Line)
	}
}

func TestImportedModules(t *testing.T) {
	src := `import numpy as np
from requests.adapters import HTTPAdapter
from . import sibling
`
	f := parse(t, src)
	mods := f.ImportedModules()
	if !mods["numpy"] {
		t.Error("expected module root numpy")
	}
	if !mods["requests"] {
		t.Error("expected module root requests")
	}
	if mods[""] || mods["."] {
		t.Error("relative imports must not contribute module roots")
	}
}

func TestReferences(t *testing.T) {
	src := `import os
import sys

def run():
    return os.path.join("a", "b")
`
	f := parse(t, src)
	refs := f.References()
	if !refs["os"] {
		t.Error("expected os referenced via attribute base")
	}
	if refs["sys"] {
		t.Error("sys only appears in an import statement, not a reference")
	}
}

func TestFunctions(t *testing.T) {
	src := `def documented() -> int:
    """Doc."""
    return 1

def untyped(x):
    return x

def typed_param(x: int):
    return x

class Thing:
    """A class."""

    def method(self):
        pass
`
	f := parse(t, src)
	funcs := f.Functions()
	if len(funcs) != 4 {
		t.Fatalf("expected 4 functions (methods included), got %d", len(funcs))
	}

	byName := make(map[string]pyast.Function)
	for _, fn := range funcs {
		byName[fn.Name] = fn
	}
	if fn := byName["documented"]; !fn.Documented || !fn.Typed {
		t.Errorf("documented: got %+v, want documented and typed", fn)
	}
	if fn := byName["untyped"]; fn.Documented || fn.Typed {
		t.Errorf("untyped: got %+v, want neither documented nor typed", fn)
	}
	if fn := byName["typed_param"]; !fn.Typed {
		t.Errorf("typed_param: expected Typed via parameter annotation")
	}

	classes := f.Classes()
	if len(classes) != 1 || classes[0].Name != "Thing" || !classes[0].Documented {
		t.Errorf("classes = %+v, want one documented Thing", classes)
	}
}

func TestNestingDepth(t *testing.T) {
	depth4 := `def deep(x):
    if x:
        if x:
            if x:
                if x:
                    return 1
`
	f := parse(t, depth4)
	funcs := f.Functions()
	if len(funcs) != 1 || funcs[0].NestingDepth != 4 {
		t.Fatalf("expected depth 4, got %+v", funcs)
	}

	depth3 := `def ok(items):
    for i in items:
        while i:
            with open("f") as fh:
                return fh
`
	f2 := parse(t, depth3)
	funcs2 := f2.Functions()
	if len(funcs2) != 1 || funcs2[0].NestingDepth != 3 {
		t.Fatalf("expected depth 3, got %+v", funcs2)
	}
}

func TestExceptHandlers(t *testing.T) {
	src := `try:
    risky()
except ValueError:
    pass
except KeyError:
    handle()
except Exception:
    ...
`
	f := parse(t, src)
	handlers := f.ExceptHandlers()
	if len(handlers) != 3 {
		t.Fatalf("expected 3 handlers, got %d", len(handlers))
	}
	if !handlers[0].NoOpBody {
		t.Error("pass-only handler should be a no-op body")
	}
	if handlers[1].NoOpBody {
		t.Error("handler with a real statement is not a no-op body")
	}
	if !handlers[2].NoOpBody {
		t.Error("ellipsis-only handler should be a no-op body")
	}
}

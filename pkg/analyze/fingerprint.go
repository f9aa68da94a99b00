package analyze

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/vouchdev/vouch/pkg/pyast"
)

// wordToken matches lowercase words of length >= 4, the tokens used for
// keyword-level intent matching.
var wordToken = regexp.MustCompile(`\b[a-z]{4,}\b`)

// Fingerprint summarizes what a project's code does: the modules it imports,
// the names it declares, and the words it uses. Derived per project and used
// only for similarity matching and a stable content hash.
type Fingerprint struct {
	Imports   map[string]bool
	Functions map[string]bool
	Classes   map[string]bool
	Keywords  map[string]bool
}

// BuildFingerprint derives a project fingerprint from the collected files.
// Files that fail to read or parse contribute nothing.
func BuildFingerprint(ctx context.Context, root string, files []string) (*Fingerprint, error) {
	fp := &Fingerprint{
		Imports:   make(map[string]bool),
		Functions: make(map[string]bool),
		Classes:   make(map[string]bool),
		Keywords:  make(map[string]bool),
	}

	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}

		for _, token := range wordToken.FindAllString(strings.ToLower(string(src)), -1) {
			fp.Keywords[token] = true
		}

		f, err := pyast.Parse(ctx, rel, src)
		if err != nil {
			continue
		}
		for mod := range f.ImportedModules() {
			fp.Imports[mod] = true
		}
		for _, fn := range f.Functions() {
			fp.Functions[strings.ToLower(fn.Name)] = true
		}
		for _, c := range f.Classes() {
			fp.Classes[strings.ToLower(c.Name)] = true
		}
		f.Close()
	}

	return fp, nil
}

// Hash returns a stable 16-character identifier computed over the sorted
// fingerprint sets. Diagnostic only; not compared against history.
func (fp *Fingerprint) Hash() string {
	content := strings.Join([]string{
		strings.Join(sortedKeys(fp.Imports), ","),
		strings.Join(sortedKeys(fp.Functions), ","),
		strings.Join(sortedKeys(fp.Classes), ","),
	}, "|")
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])[:16]
}

// Contains reports whether a keyword appears in any fingerprint set.
func (fp *Fingerprint) Contains(keyword string) bool {
	return fp.Imports[keyword] || fp.Functions[keyword] || fp.Classes[keyword] || fp.Keywords[keyword]
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

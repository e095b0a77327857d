package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"energyreport/internal/dataprocessing"
)

// ErrPathConflict is returned when a variable would turn a branch of the
// record map into a leaf or write below an existing leaf.
var ErrPathConflict = errors.New("record path conflict")

// PathConflictError describes a conflicting write.
type PathConflictError struct {
	Variable string // source variable name, empty for direct Set calls
	Path     string // full dot-path being written
	At       string // prefix at which the conflict was found
	Existing string // "leaf" or "branch"
}

func (e *PathConflictError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("variable %q: cannot write %q, %q is already a %s", e.Variable, e.Path, e.At, e.Existing)
	}
	return fmt.Sprintf("cannot write %q, %q is already a %s", e.Path, e.At, e.Existing)
}

func (e *PathConflictError) Unwrap() error {
	return ErrPathConflict
}

type node struct {
	value    string
	children map[string]*node // nil for leaves
}

func (n *node) isLeaf() bool {
	return n.children == nil
}

// Values is the record map: raw cell values addressed by dot-paths. The tree
// is private; callers read it through Lookup, Has and Leaves.
type Values struct {
	root   *node
	leaves int
}

// NewValues returns an empty record map.
func NewValues() *Values {
	return &Values{root: &node{children: map[string]*node{}}}
}

var (
	variableColumns = []string{"Variable", "variable", "VARIABLE"}
	valueColumns    = []string{"Value", "value", "VALUE"}
)

// BuildValues folds the rows of a variable sheet into a record map. Each row
// contributes its Value under the path resolved from its Variable name. Rows
// without a variable name are skipped and later rows overwrite earlier ones.
func BuildValues(table *dataprocessing.Table) (*Values, error) {
	values := NewValues()
	if table == nil {
		return values, nil
	}

	for _, rec := range table.Records {
		name := strings.TrimSpace(rec.First(variableColumns...))
		if name == "" {
			continue
		}

		if err := values.Set(ResolveKey(name), rec.First(valueColumns...)); err != nil {
			var conflict *PathConflictError
			if errors.As(err, &conflict) {
				conflict.Variable = name
			}
			return nil, err
		}
	}

	return values, nil
}

// Set stores value at path, creating intermediate branches. Overwriting an
// existing leaf is allowed; replacing a branch with a leaf or descending
// through a leaf returns a *PathConflictError.
func (v *Values) Set(path, value string) error {
	parts := strings.Split(path, ".")
	cursor := v.root

	for i, part := range parts[:len(parts)-1] {
		next, ok := cursor.children[part]
		if !ok {
			next = &node{children: map[string]*node{}}
			cursor.children[part] = next
		} else if next.isLeaf() {
			return &PathConflictError{Path: path, At: strings.Join(parts[:i+1], "."), Existing: "leaf"}
		}
		cursor = next
	}

	last := parts[len(parts)-1]
	if existing, ok := cursor.children[last]; ok {
		if !existing.isLeaf() {
			return &PathConflictError{Path: path, At: path, Existing: "branch"}
		}
		existing.value = value
		return nil
	}

	cursor.children[last] = &node{value: value}
	v.leaves++
	return nil
}

func (v *Values) find(path string) *node {
	cursor := v.root
	for _, part := range strings.Split(path, ".") {
		if cursor.isLeaf() {
			return nil
		}
		next, ok := cursor.children[part]
		if !ok {
			return nil
		}
		cursor = next
	}
	return cursor
}

// Lookup returns the raw value at path. Missing segments and paths that end
// on a branch yield "".
func (v *Values) Lookup(path string) string {
	if n := v.find(path); n != nil && n.isLeaf() {
		return n.value
	}
	return ""
}

// Has reports whether path holds a leaf value, even an empty one.
func (v *Values) Has(path string) bool {
	n := v.find(path)
	return n != nil && n.isLeaf()
}

// Len returns the number of leaf values.
func (v *Values) Len() int {
	return v.leaves
}

// Leaves returns a copy of every leaf keyed by its full dot-path.
func (v *Values) Leaves() map[string]string {
	out := make(map[string]string, v.leaves)
	var walk func(prefix string, n *node)
	walk = func(prefix string, n *node) {
		for name, child := range n.children {
			path := name
			if prefix != "" {
				path = prefix + "." + name
			}
			if child.isLeaf() {
				out[path] = child.value
				continue
			}
			walk(path, child)
		}
	}
	walk("", v.root)
	return out
}

// Paths returns every leaf path in sorted order.
func (v *Values) Paths() []string {
	leaves := v.Leaves()
	paths := make([]string, 0, len(leaves))
	for p := range leaves {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

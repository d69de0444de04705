// Where: internal/architecture/layering_cycles_test.go
// What: Import cycle guard for internal packages.
// Why: The compiler only reports the first cycle; list all of them with their paths.
package architecture

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path"
	"reflect"
	"sort"
	"strings"
	"testing"
)

type importGraph map[string][]string

func TestNoInternalImportCycles(t *testing.T) {
	t.Parallel()

	edges := map[string]map[string]bool{}
	walkInternalSources(t, parser.ImportsOnly, func(rel string, _ *token.FileSet, file *ast.File) {
		source := internalImportPrefix + path.Dir(rel)
		if edges[source] == nil {
			edges[source] = map[string]bool{}
		}
		for _, imp := range file.Imports {
			target := strings.Trim(imp.Path.Value, "\"")
			if strings.HasPrefix(target, internalImportPrefix) {
				edges[source][target] = true
			}
		}
	})

	graph := importGraph{}
	for source, targets := range edges {
		for target := range targets {
			graph[source] = append(graph[source], target)
		}
	}

	if cycles := graph.cycles(); len(cycles) > 0 {
		t.Fatalf("internal import cycles detected:\n%s", strings.Join(cycles, "\n"))
	}
}

func TestImportGraphCycles(t *testing.T) {
	graph := importGraph{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
		"d": {"a"},
	}
	want := []string{"a -> b -> c -> a"}
	if got := graph.cycles(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected cycles: %v", got)
	}
	if got := (importGraph{"a": {"b"}, "b": nil}).cycles(); len(got) != 0 {
		t.Fatalf("expected acyclic graph, got %v", got)
	}
}

// cycles returns each distinct back-edge cycle as "a -> b -> a", sorted.
// Nodes and edges are visited in lexical order so output is stable.
func (g importGraph) cycles() []string {
	nodes := make([]string, 0, len(g))
	for node := range g {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	onStack := map[string]int{}
	done := map[string]bool{}
	found := map[string]bool{}
	var stack []string

	var visit func(node string)
	visit = func(node string) {
		onStack[node] = len(stack)
		stack = append(stack, node)

		targets := append([]string(nil), g[node]...)
		sort.Strings(targets)
		for _, next := range targets {
			if idx, ok := onStack[next]; ok {
				loop := append(append([]string{}, stack[idx:]...), next)
				found[strings.Join(loop, " -> ")] = true
				continue
			}
			if !done[next] {
				visit(next)
			}
		}

		stack = stack[:len(stack)-1]
		delete(onStack, node)
		done[node] = true
	}

	for _, node := range nodes {
		if !done[node] {
			visit(node)
		}
	}

	out := make([]string, 0, len(found))
	for cycle := range found {
		out = append(out, cycle)
	}
	sort.Strings(out)
	return out
}

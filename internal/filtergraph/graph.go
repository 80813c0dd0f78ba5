package filtergraph

import (
	"fmt"
	"strings"

	"sharecut/internal/services"
)

// Root stream labels and the terminal output label.
const (
	CameraInput = "0:v"
	SlidesInput = "1:v"
	OutputLabel = "v"
)

// Param is a filter option. An empty Key marks a positional value.
type Param struct {
	Key   string `json:"key,omitempty" yaml:"key,omitempty"`
	Value string `json:"value" yaml:"value"`
}

// P builds a keyed Param.
func P(key, value string) Param {
	return Param{Key: key, Value: value}
}

// Node is one filter instance with its labelled input and output pads.
type Node struct {
	ID      string   `json:"id" yaml:"id"`
	Op      string   `json:"op" yaml:"op"`
	Inputs  []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs []string `json:"outputs" yaml:"outputs"`
	Params  []Param  `json:"params,omitempty" yaml:"params,omitempty"`
}

// Param returns the value of the named option.
func (n Node) Param(key string) (string, bool) {
	for _, p := range n.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

func (n Node) writeTo(b *strings.Builder) {
	for _, in := range n.Inputs {
		b.WriteString("[" + in + "]")
	}
	b.WriteString(n.Op)
	for i, p := range n.Params {
		if i == 0 {
			b.WriteByte('=')
		} else {
			b.WriteByte(':')
		}
		if p.Key != "" {
			b.WriteString(p.Key)
			b.WriteByte('=')
		}
		b.WriteString(quote(p.Value))
	}
	for _, out := range n.Outputs {
		b.WriteString("[" + out + "]")
	}
}

// Graph is a DAG of filter nodes in topological order with one terminal
// output.
type Graph struct {
	Nodes  []Node `json:"nodes" yaml:"nodes"`
	Output string `json:"output" yaml:"output"`
}

// String renders the graph as a single -filter_complex argument.
func (g Graph) String() string {
	return g.join(";")
}

// Script renders the graph one chain per line, for -filter_complex_script.
func (g Graph) Script() string {
	return g.join(";\n") + "\n"
}

func (g Graph) join(sep string) string {
	var b strings.Builder
	for i, n := range g.Nodes {
		if i > 0 {
			b.WriteString(sep)
		}
		n.writeTo(&b)
	}
	return b.String()
}

// Node looks a node up by ID.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Terminal returns the node that produces the graph output.
func (g Graph) Terminal() (Node, bool) {
	for _, n := range g.Nodes {
		for _, out := range n.Outputs {
			if out == g.Output {
				return n, true
			}
		}
	}
	return Node{}, false
}

// Ops returns the operation of every node in order.
func (g Graph) Ops() []string {
	ops := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ops = append(ops, n.Op)
	}
	return ops
}

// Validate checks that every edge is wired exactly once: each input is a root
// stream or an earlier node's output, each output other than the terminal one
// is consumed by exactly one node, and the terminal output is produced once.
func (g Graph) Validate() error {
	ids := make(map[string]struct{}, len(g.Nodes))
	produced := make(map[string]bool)
	consumed := make(map[string]bool)
	roots := map[string]bool{CameraInput: true, SlidesInput: true}

	for _, n := range g.Nodes {
		if _, dup := ids[n.ID]; dup {
			return graphError(fmt.Sprintf("duplicate node id %q", n.ID))
		}
		ids[n.ID] = struct{}{}
		if strings.TrimSpace(n.Op) == "" {
			return graphError(fmt.Sprintf("node %q has no operation", n.ID))
		}
		for _, in := range n.Inputs {
			if !roots[in] && !produced[in] {
				return graphError(fmt.Sprintf("node %q reads %q before it is produced", n.ID, in))
			}
			if consumed[in] {
				return graphError(fmt.Sprintf("label %q is consumed more than once", in))
			}
			consumed[in] = true
		}
		if len(n.Outputs) == 0 {
			return graphError(fmt.Sprintf("node %q has no outputs", n.ID))
		}
		for _, out := range n.Outputs {
			if produced[out] || roots[out] {
				return graphError(fmt.Sprintf("label %q is produced more than once", out))
			}
			produced[out] = true
		}
	}

	if !produced[g.Output] {
		return graphError(fmt.Sprintf("terminal output %q is never produced", g.Output))
	}
	if consumed[g.Output] {
		return graphError(fmt.Sprintf("terminal output %q is consumed inside the graph", g.Output))
	}
	for label := range produced {
		if label != g.Output && !consumed[label] {
			return graphError(fmt.Sprintf("label %q is never consumed", label))
		}
	}
	return nil
}

func graphError(message string) error {
	return services.Wrap(services.ErrValidation, "filtergraph", "validate", message, nil)
}

// quote protects option values that contain filtergraph syntax characters.
func quote(value string) string {
	if !strings.ContainsAny(value, ",;[]:=' \t") {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

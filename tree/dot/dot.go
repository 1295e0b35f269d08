/*
Package dot exports trees in the DOT language of Graphviz and renders
the exported files to images with the dot command.
*/
package dot

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/pbanos/acorn/tree"
)

/*
ErrNoRenderer is returned by Render when the dot binary cannot be found.
*/
var ErrNoRenderer = errors.New("dot binary not found")

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

/*
Write takes an io.Writer and a tree and writes the tree on it as a
digraph: decision nodes are labelled with the feature they split on,
leaf nodes with their label, and edges with the value that leads to
the child node. Nodes are named node0, node1... in depth-first order
and children follow the order in which their values were first seen.
*/
func Write(w io.Writer, t *tree.Tree) error {
	if t == nil || t.Root == nil {
		return errors.New("cannot export an empty tree")
	}
	bw := bufio.NewWriter(w)
	e := &exporter{w: bw}
	e.printf("digraph DecisionTree {\n")
	e.printf("    node [shape=ellipse, style=filled, fillcolor = lightgoldenrod];\n")
	e.node(t.Root)
	e.printf("}\n")
	if e.err != nil {
		return errors.Wrap(e.err, "writing DOT")
	}
	return errors.Wrap(bw.Flush(), "writing DOT")
}

/*
WriteFile takes a path and a tree and writes the tree in DOT format to
the file at path, creating or truncating it.
*/
func WriteFile(path string, t *tree.Tree) error {
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "writing DOT file %s", path)
	}
	return nil
}

type exporter struct {
	w       io.Writer
	counter int
	err     error
}

func (e *exporter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *exporter) node(n *tree.Node) string {
	id := fmt.Sprintf("node%d", e.counter)
	e.counter++
	label := n.SubtreeFeature
	if n.IsLeaf() {
		label = "Label: " + n.Label()
	}
	e.printf("    %s [label=\"%s\"];\n", id, labelEscaper.Replace(label))
	for _, st := range n.Subtrees() {
		childID := e.node(st)
		e.printf("    %s -> %s [label=\"\", xlabel=\"%s\", fontcolor=red];\n", id, childID, labelEscaper.Replace(st.Criterion.Value()))
	}
	return id
}

/*
Render takes a context, the name or path of the dot binary, the path of a
DOT file and the path of a PNG file, and runs dot to render the DOT file
into the PNG file, creating the parent directory of the PNG file when
missing. It returns the combined output of the command, and ErrNoRenderer
when the binary cannot be found.
*/
func Render(ctx context.Context, binary, dotFile, pngFile string) ([]byte, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, errors.Wrap(ErrNoRenderer, err.Error())
	}
	if dir := filepath.Dir(pngFile); dir != "" {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "creating directory %s", dir)
		}
	}
	out, err := exec.CommandContext(ctx, path, "-Tpng", dotFile, "-o", pngFile).CombinedOutput()
	if err != nil {
		return out, errors.Wrapf(err, "rendering %s", dotFile)
	}
	return out, nil
}

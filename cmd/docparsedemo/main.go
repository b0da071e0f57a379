// Command docparsedemo exercises the docparser pipeline end to end: it reads
// a raw doc-comment body from a file (or stdin), parses it against an empty
// symbol graph, and prints the resulting AST outline plus any diagnostics.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/doxcore/docparser"
)

type CLI struct {
	File    string `arg:"" optional:"" help:"Doc-comment file to parse (reads stdin if omitted)."`
	Scope   string `help:"Enclosing scope to resolve @ref/@see against." default:""`
	Verbose bool   `short:"v" help:"Print diagnostics even when none are raised."`
}

func (c *CLI) Run() error {
	input, err := c.readInput()
	if err != nil {
		return err
	}

	sink := docparser.NewRecordingSink(docparser.NewLogSink(nil))
	cfg := docparser.NewConfiguration()
	cfg.Sink = sink
	graph := docparser.NewMemGraph()

	root := docparser.ParseDoc(cfg, graph, c.fileName(), 1, c.Scope, nil, input)

	fmt.Println(outline(root, root.RootIdx, 0))
	if c.Verbose && !sink.HasErrors() {
		fmt.Fprintln(os.Stderr, "no diagnostics")
	}
	return nil
}

func (c *CLI) readInput() (string, error) {
	if c.File == "" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(c.File)
	return string(b), err
}

func (c *CLI) fileName() string {
	if c.File == "" {
		return "<stdin>"
	}
	return c.File
}

func outline(r *docparser.Root, idx, depth int) string {
	n := r.Node(idx)
	line := fmt.Sprintf("%*s%v", depth*2, "", n.Kind)
	for _, child := range r.ChildrenOf(idx) {
		line += "\n" + outline(r, child, depth+1)
	}
	return line
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("docparsedemo"),
		kong.Description("Parse a doc comment body and print its AST outline."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

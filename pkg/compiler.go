package slang

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
)

// Compiler runs the whole pipeline: source text through the lexer and parser,
// the resulting AST through the code generator, and the IR into OutputPath.
type Compiler struct {
	OutputPath   string
	EmitToStdout bool
}

func NewCompiler() *Compiler {
	return &Compiler{
		OutputPath: "output.ll",
	}
}

func (c *Compiler) Compile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return &FileProcessError{Path: filename, Err: err}
	}

	return c.compile(string(data))
}

func (c *Compiler) CompileFromReader(reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return &FileProcessError{Path: "<reader>", Err: err}
	}

	return c.compile(string(data))
}

func (c *Compiler) compile(src string) error {
	lexer := NewLexer(src)
	parser, err := NewParser(lexer)
	if err != nil {
		return err
	}

	tea, err := parser.ParseTea()
	if err != nil {
		return err
	}

	// The Enabled guard keeps the repr walk off the fast path entirely.
	if Debug.Enabled {
		Debug.Println(repr.String(tea, repr.Indent("  ")))
	}

	mod, err := GenerateIR(tea)
	if err != nil {
		return err
	}

	out := mod.String()
	if err := os.WriteFile(c.OutputPath, []byte(out), 0o644); err != nil {
		return &FileProcessError{Path: c.OutputPath, Err: err}
	}

	if c.EmitToStdout {
		fmt.Print(out)
	}

	return nil
}

// Package prettyprinter renders terms across multiple indented lines. The
// nodes' own String methods give the compact one-line form; this printer
// breaks constructs open once they stop fitting the line width.
package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/uplc/internal/term"
)

type CodePrinter struct {
	buf       bytes.Buffer
	indent    int
	lineWidth int // max line width (0 = unlimited)
	column    int // current column position
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{lineWidth: 100}
}

func (p *CodePrinter) SetLineWidth(width int) {
	p.lineWidth = width
}

// PrintProgram renders `(program x.y.z body)` with the body broken open
// when the compact form overflows the line width.
func (p *CodePrinter) PrintProgram(prog *term.Program) string {
	p.reset()
	if compact := prog.String(); p.fits(compact) {
		return compact
	}
	p.write("(program " + prog.Version.String())
	p.block([]term.Term{prog.Body}, ")")
	return p.buf.String()
}

// PrintTerm renders a bare term.
func (p *CodePrinter) PrintTerm(t term.Term) string {
	p.reset()
	p.printTerm(t)
	return p.buf.String()
}

func (p *CodePrinter) reset() {
	p.buf.Reset()
	p.indent = 0
	p.column = 0
}

func (p *CodePrinter) fits(s string) bool {
	return p.lineWidth == 0 || p.column+len(s) <= p.lineWidth
}

func (p *CodePrinter) printTerm(t term.Term) {
	compact := t.String()
	if p.fits(compact) {
		p.write(compact)
		return
	}

	switch n := t.(type) {
	case *term.LamAbs:
		p.write("(lam " + n.Name)
		p.block([]term.Term{n.Body}, ")")
	case *term.Apply:
		// The whole application spine goes one element per line.
		p.write("[")
		p.block(applySpine(n), "]")
	case *term.Delay:
		p.write("(delay")
		p.block([]term.Term{n.Body}, ")")
	case *term.Force:
		p.write("(force")
		p.block([]term.Term{n.Body}, ")")
	case *term.Constr:
		p.write("(constr " + strconv.FormatUint(n.Tag, 10))
		p.block(n.Fields, ")")
	case *term.Case:
		p.write("(case")
		p.block(append([]term.Term{n.Scrut}, n.Branches...), ")")
	default:
		// Leaves have no seams to break at.
		p.write(compact)
	}
}

// block writes each item on its own indented line and closes the
// construct on a fresh line at the enclosing indent.
func (p *CodePrinter) block(items []term.Term, close string) {
	p.indent++
	for _, item := range items {
		p.writeln()
		p.writeIndent()
		p.printTerm(item)
	}
	p.indent--
	p.writeln()
	p.writeIndent()
	p.write(close)
}

// applySpine flattens nested applications so [f a b] prints flat instead
// of as [[f a] b].
func applySpine(a *term.Apply) []term.Term {
	if fn, ok := a.Fn.(*term.Apply); ok {
		return append(applySpine(fn), a.Arg)
	}
	return []term.Term{a.Fn, a.Arg}
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.column = p.indent * 4
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
	if idx := strings.LastIndex(s, "\n"); idx != -1 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
	p.column = 0
}

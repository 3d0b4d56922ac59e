// Package term defines the immutable AST the machines consume: variables,
// single-parameter abstractions, strict application, delay/force
// suspensions, literal constants, named builtins, unconditional failure and
// tagged sums with case dispatch. Nodes are never mutated after
// construction; String renders the compact source syntax.
package term

import (
	"fmt"
	"strings"

	"github.com/funvibe/uplc/internal/constant"
)

type Term interface {
	String() string
	termNode()
}

type Var struct {
	Name string
}

func (v *Var) String() string { return v.Name }
func (v *Var) termNode()      {}

type LamAbs struct {
	Name string
	Body Term
}

func (l *LamAbs) String() string { return fmt.Sprintf("(lam %s %s)", l.Name, l.Body) }
func (l *LamAbs) termNode()      {}

type Apply struct {
	Fn  Term
	Arg Term
}

func (a *Apply) String() string { return fmt.Sprintf("[%s %s]", a.Fn, a.Arg) }
func (a *Apply) termNode()      {}

type Delay struct {
	Body Term
}

func (d *Delay) String() string { return fmt.Sprintf("(delay %s)", d.Body) }
func (d *Delay) termNode()      {}

type Force struct {
	Body Term
}

func (f *Force) String() string { return fmt.Sprintf("(force %s)", f.Body) }
func (f *Force) termNode()      {}

type Const struct {
	Value constant.Constant
}

func (c *Const) String() string { return fmt.Sprintf("(con %s %s)", c.Value.Type(), c.Value) }
func (c *Const) termNode()      {}

type Builtin struct {
	Name string
}

func (b *Builtin) String() string { return fmt.Sprintf("(builtin %s)", b.Name) }
func (b *Builtin) termNode()      {}

type Error struct{}

func (e *Error) String() string { return "(error)" }
func (e *Error) termNode()      {}

type Constr struct {
	Tag    uint64
	Fields []Term
}

func (c *Constr) String() string {
	var out strings.Builder
	fmt.Fprintf(&out, "(constr %d", c.Tag)
	for _, f := range c.Fields {
		out.WriteByte(' ')
		out.WriteString(f.String())
	}
	out.WriteByte(')')
	return out.String()
}
func (c *Constr) termNode() {}

type Case struct {
	Scrut    Term
	Branches []Term
}

func (c *Case) String() string {
	var out strings.Builder
	out.WriteString("(case ")
	out.WriteString(c.Scrut.String())
	for _, b := range c.Branches {
		out.WriteByte(' ')
		out.WriteString(b.String())
	}
	out.WriteByte(')')
	return out.String()
}
func (c *Case) termNode() {}

// Version is the x.y.z language version carried by a program header.
// Tagged sums (constr/case) need at least 1.1.0.
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

func (v Version) String() string { return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch) }

// AtLeast reports whether v is o or newer.
func (v Version) AtLeast(o Version) bool {
	if v.Major != o.Major {
		return v.Major > o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor > o.Minor
	}
	return v.Patch >= o.Patch
}

// Latest is the newest language version this module understands.
var Latest = Version{Major: 1, Minor: 1, Patch: 0}

type Program struct {
	Version Version
	Body    Term
}

func (p *Program) String() string { return fmt.Sprintf("(program %s %s)", p.Version, p.Body) }

// Package symbolic provides an arena-allocated symbolic expression tree
// mirroring every boolean constraint the encoder hands to the solver, in
// domain vocabulary (package/version atoms) instead of solver literals. It
// exists purely so an unsat core can be decoded back into something a
// caller understands without ever parsing a solver AST.
package symbolic

import (
	"fmt"
	"strings"
)

// AtomicKind distinguishes the three atomic proposition shapes.
type AtomicKind int

const (
	VerEq AtomicKind = iota
	VerLE
	VerGE
)

// AtomicExpr is a single proposition about a package's chosen version.
type AtomicExpr struct {
	Kind    AtomicKind
	Package uint32
	Version uint64
}

func (a AtomicExpr) String() string {
	switch a.Kind {
	case VerEq:
		return fmt.Sprintf("Ver(%d) = %d", a.Package, a.Version)
	case VerLE:
		return fmt.Sprintf("Ver(%d) ≤ %d", a.Package, a.Version)
	default:
		return fmt.Sprintf("Ver(%d) ≥ %d", a.Package, a.Version)
	}
}

// Kind distinguishes the compound Expr shapes.
type Kind int

const (
	KAtom Kind = iota
	KNot
	KAnd
	KOr
	KImplies
	KBot
	KTop
)

// Ref is a handle into an Arena's node slice. The zero Ref is Bot (arenas
// reserve index 0 for Bot and index 1 for Top, see NewArena).
type Ref int

// Expr is one node of the tree: either a leaf (Atom/Bot/Top) or an
// operator referencing its operands by Ref into the owning Arena.
type Expr struct {
	Kind  Kind
	Atom  AtomicExpr
	L, R  Ref // operands; Not/unary use L only
}

// Arena owns a flat slice of Expr nodes; Refs index into it. This is the
// Go rendition of a bump allocator for a tree that is only ever appended
// to and walked, never mutated in place.
type Arena struct {
	nodes []Expr
}

// NewArena returns an Arena pre-seeded with Bot at ref 0 and Top at ref 1,
// so Bot()/Top() are O(1) constant refs rather than fresh allocations.
func NewArena() *Arena {
	a := &Arena{nodes: make([]Expr, 0, 16)}
	a.nodes = append(a.nodes, Expr{Kind: KBot})
	a.nodes = append(a.nodes, Expr{Kind: KTop})
	return a
}

func (a *Arena) alloc(e Expr) Ref {
	a.nodes = append(a.nodes, e)
	return Ref(len(a.nodes) - 1)
}

// Get dereferences a Ref into its node.
func (a *Arena) Get(r Ref) Expr {
	return a.nodes[r]
}

// Bot is the arena's canonical "false" leaf.
func (a *Arena) Bot() Ref { return Ref(0) }

// Top is the arena's canonical "true" leaf.
func (a *Arena) Top() Ref { return Ref(1) }

// AtomExpr allocates a fresh atomic-proposition leaf.
func (a *Arena) AtomExpr(atom AtomicExpr) Ref {
	return a.alloc(Expr{Kind: KAtom, Atom: atom})
}

// Not builds ¬expr, collapsing double negation eagerly: Not(Not(e)) == e,
// matching the original's smart constructor so the tree never grows a
// chain of double negations a caller would have to walk through.
func (a *Arena) Not(expr Ref) Ref {
	if n := a.Get(expr); n.Kind == KNot {
		return n.L
	}
	return a.alloc(Expr{Kind: KNot, L: expr})
}

// And builds expr1 ∧ expr2.
func (a *Arena) And(expr1, expr2 Ref) Ref {
	return a.alloc(Expr{Kind: KAnd, L: expr1, R: expr2})
}

// Or builds expr1 ∨ expr2.
func (a *Arena) Or(expr1, expr2 Ref) Ref {
	return a.alloc(Expr{Kind: KOr, L: expr1, R: expr2})
}

// Implies builds expr1 → expr2.
func (a *Arena) Implies(expr1, expr2 Ref) Ref {
	return a.alloc(Expr{Kind: KImplies, L: expr1, R: expr2})
}

// precedence contexts a node may be printed under, controlling parenthesization.
type precCtx int

const (
	ctxOuter precCtx = iota
	ctxNot
	ctxAnd
	ctxOr
	ctxImplL
	ctxImplR
)

// String pretty-prints the expression rooted at r, adding parentheses only
// where operator precedence would otherwise make the result ambiguous —
// the same minimal-parens behavior as the original's precedence-lattice
// printer, reduced to a lookup table since Go has no partial-order derive.
func (a *Arena) String(r Ref) string {
	var b strings.Builder
	a.fmtPrec(&b, r, ctxOuter)
	return b.String()
}

func needsParen(kind Kind, ctx precCtx) bool {
	switch kind {
	case KAnd:
		switch ctx {
		case ctxNot, ctxOr:
			return true
		}
		return false
	case KOr:
		switch ctx {
		case ctxNot, ctxAnd:
			return true
		}
		return false
	case KImplies:
		switch ctx {
		case ctxOuter, ctxImplR:
			return false
		}
		return true
	default:
		return false
	}
}

func (a *Arena) fmtPrec(b *strings.Builder, r Ref, ctx precCtx) {
	n := a.Get(r)
	switch n.Kind {
	case KAtom:
		b.WriteString(n.Atom.String())
	case KBot:
		b.WriteString("⊤")
	case KTop:
		b.WriteString("⊥")
	case KNot:
		b.WriteString("¬")
		a.fmtPrec(b, n.L, ctxNot)
	case KAnd:
		paren := needsParen(KAnd, ctx)
		if paren {
			b.WriteString("(")
		}
		a.fmtPrec(b, n.L, ctxAnd)
		b.WriteString(" ∧ ")
		a.fmtPrec(b, n.R, ctxAnd)
		if paren {
			b.WriteString(")")
		}
	case KOr:
		paren := needsParen(KOr, ctx)
		if paren {
			b.WriteString("(")
		}
		a.fmtPrec(b, n.L, ctxOr)
		b.WriteString(" ∨ ")
		a.fmtPrec(b, n.R, ctxOr)
		if paren {
			b.WriteString(")")
		}
	case KImplies:
		paren := needsParen(KImplies, ctx)
		if paren {
			b.WriteString("(")
		}
		a.fmtPrec(b, n.L, ctxImplL)
		b.WriteString(" → ")
		a.fmtPrec(b, n.R, ctxImplR)
		if paren {
			b.WriteString(")")
		}
	}
}

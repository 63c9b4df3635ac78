package query

import (
	"fmt"

	"github.com/kailas-cloud/wikisearch/internal/domain"
	"github.com/kailas-cloud/wikisearch/internal/textproc"
)

// MaxDepth bounds the nesting of an expression tree.
const MaxDepth = 32

// Op is a boolean operator joining two sub-expressions.
type Op string

const (
	// OpAnd keeps documents relevant to both sides.
	OpAnd Op = "and"
	// OpOr keeps documents relevant to either side.
	OpOr Op = "or"
	// OpMinus keeps documents of the left side absent from the right side.
	OpMinus Op = "minus"
)

// Expr is an already built query tree: either a single term or an operator
// applied to two sub-expressions.
type Expr struct {
	term  string
	op    Op
	left  *Expr
	right *Expr
}

// Term creates a leaf expression.
func Term(t string) Expr { return Expr{term: t} }

// And creates l AND r.
func And(l, r Expr) Expr { return Expr{op: OpAnd, left: &l, right: &r} }

// Or creates l OR r.
func Or(l, r Expr) Expr { return Expr{op: OpOr, left: &l, right: &r} }

// Minus creates l MINUS r.
func Minus(l, r Expr) Expr { return Expr{op: OpMinus, left: &l, right: &r} }

// Combine joins l and r with op.
func Combine(op Op, l, r Expr) (Expr, error) {
	switch op {
	case OpAnd:
		return And(l, r), nil
	case OpOr:
		return Or(l, r), nil
	case OpMinus:
		return Minus(l, r), nil
	default:
		return Expr{}, fmt.Errorf("%w: unknown operator %q", domain.ErrInvalidQuery, op)
	}
}

// IsTerm reports whether e is a leaf.
func (e Expr) IsTerm() bool { return e.op == "" }

// TermValue returns the term of a leaf expression.
func (e Expr) TermValue() string { return e.term }

// Op returns the operator of a non-leaf expression.
func (e Expr) Op() Op { return e.op }

// Left returns the left operand of a non-leaf expression.
func (e Expr) Left() Expr { return *e.left }

// Right returns the right operand of a non-leaf expression.
func (e Expr) Right() Expr { return *e.right }

// Terms returns every distinct leaf term in left-to-right order.
func (e Expr) Terms() []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(Expr)
	walk = func(n Expr) {
		if n.IsTerm() {
			if !seen[n.term] {
				seen[n.term] = true
				out = append(out, n.term)
			}
			return
		}
		walk(*n.left)
		walk(*n.right)
	}
	walk(e)
	return out
}

// String renders e fully parenthesised, for logs.
func (e Expr) String() string {
	if e.IsTerm() {
		return fmt.Sprintf("%q", e.term)
	}
	if e.left == nil || e.right == nil {
		return fmt.Sprintf("(%s ?)", e.op)
	}
	return fmt.Sprintf("(%s %s %s)", e.left, e.op, e.right)
}

// Validate checks that e is a well-formed tree.
func (e Expr) Validate() error {
	return e.validate(1)
}

func (e Expr) validate(depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w: expression deeper than %d", domain.ErrInvalidQuery, MaxDepth)
	}
	if e.IsTerm() {
		if _, err := textproc.Normalize(e.term); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
		}
		return nil
	}
	switch e.op {
	case OpAnd, OpOr, OpMinus:
	default:
		return fmt.Errorf("%w: unknown operator %q", domain.ErrInvalidQuery, e.op)
	}
	if e.left == nil || e.right == nil {
		return fmt.Errorf("%w: %s needs two operands", domain.ErrInvalidQuery, e.op)
	}
	if err := e.left.validate(depth + 1); err != nil {
		return err
	}
	return e.right.validate(depth + 1)
}

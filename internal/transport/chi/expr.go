package chi

import (
	"fmt"

	"github.com/kailas-cloud/wikisearch/internal/domain"
	queryuc "github.com/kailas-cloud/wikisearch/internal/usecase/query"
)

// ExprDTO is the JSON form of a query tree: either {"term": "java"} or
// {"op": "and", "left": {...}, "right": {...}}.
type ExprDTO struct {
	Term  string   `json:"term,omitempty"`
	Op    string   `json:"op,omitempty"`
	Left  *ExprDTO `json:"left,omitempty"`
	Right *ExprDTO `json:"right,omitempty"`
}

func (d *ExprDTO) toExpr(depth int) (queryuc.Expr, error) {
	if depth > queryuc.MaxDepth {
		return queryuc.Expr{}, fmt.Errorf("%w: nesting deeper than %d", domain.ErrInvalidQuery, queryuc.MaxDepth)
	}

	if d.Op == "" {
		if d.Left != nil || d.Right != nil {
			return queryuc.Expr{}, fmt.Errorf("%w: operands without op", domain.ErrInvalidQuery)
		}
		if d.Term == "" {
			return queryuc.Expr{}, fmt.Errorf("%w: node needs a term or an op", domain.ErrInvalidQuery)
		}
		return queryuc.Term(d.Term), nil
	}

	if d.Term != "" {
		return queryuc.Expr{}, fmt.Errorf("%w: node has both term and op", domain.ErrInvalidQuery)
	}
	if d.Left == nil || d.Right == nil {
		return queryuc.Expr{}, fmt.Errorf("%w: %s needs left and right", domain.ErrInvalidQuery, d.Op)
	}

	left, err := d.Left.toExpr(depth + 1)
	if err != nil {
		return queryuc.Expr{}, err
	}
	right, err := d.Right.toExpr(depth + 1)
	if err != nil {
		return queryuc.Expr{}, err
	}
	return queryuc.Combine(queryuc.Op(d.Op), left, right)
}

package index

import (
	"strings"

	"github.com/fwojciec/wikiextract"
)

// Boolean operators. They are recognized only when written in upper case.
const (
	OpAnd = "AND"
	OpOr  = "OR"
	OpNot = "NOT"
)

var precedence = map[string]int{OpNot: 3, OpAnd: 2, OpOr: 1}

// step is one element of a query in postfix order: an operator, or a term
// whose analyzed words must all appear.
type step struct {
	op    string
	words []string
}

// Expr is a parsed boolean query.
type Expr struct {
	steps []step
}

// String returns the query in postfix notation.
func (e *Expr) String() string {
	parts := make([]string, 0, len(e.steps))
	for _, s := range e.steps {
		if s.op != "" {
			parts = append(parts, s.op)
		} else {
			parts = append(parts, strings.Join(s.words, "+"))
		}
	}
	return strings.Join(parts, " ")
}

// ParseBoolean parses an infix boolean query.
//
// Terms are combined with AND, OR and NOT and grouped with parentheses.
// NOT binds tighter than AND, which binds tighter than OR, and NOT NOT
// cancels out. Adjacent terms without an operator are joined with OR.
// Each term is analyzed with a. A term that yields several words matches
// records containing all of them, and one that yields none matches nothing.
//
// Returns EINVALID for an empty query, an operator missing an operand, or
// unbalanced parentheses.
func ParseBoolean(query string, a *Analyzer) (*Expr, error) {
	if a == nil {
		a = &Analyzer{}
	}
	query = strings.NewReplacer("(", " ( ", ")", " ) ").Replace(query)
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return nil, wikiextract.Errorf(wikiextract.EINVALID, "empty query")
	}

	var out []step
	var ops []string
	// operand is true when the previous token completed an operand.
	operand := false

	binary := func(op string) {
		for len(ops) > 0 && precedence[ops[len(ops)-1]] >= precedence[op] {
			out = append(out, step{op: ops[len(ops)-1]})
			ops = ops[:len(ops)-1]
		}
		ops = append(ops, op)
	}

	for _, tok := range tokens {
		switch tok {
		case "(":
			if operand {
				binary(OpOr)
			}
			ops = append(ops, tok)
			operand = false
		case ")":
			if !operand {
				return nil, wikiextract.Errorf(wikiextract.EINVALID, "missing operand before %q", tok)
			}
			for len(ops) > 0 && ops[len(ops)-1] != "(" {
				out = append(out, step{op: ops[len(ops)-1]})
				ops = ops[:len(ops)-1]
			}
			if len(ops) == 0 {
				return nil, wikiextract.Errorf(wikiextract.EINVALID, "unbalanced %q", tok)
			}
			ops = ops[:len(ops)-1]
		case OpAnd, OpOr:
			if !operand {
				return nil, wikiextract.Errorf(wikiextract.EINVALID, "missing operand before %s", tok)
			}
			binary(tok)
			operand = false
		case OpNot:
			if operand {
				binary(OpOr)
			}
			if len(ops) > 0 && ops[len(ops)-1] == OpNot {
				ops = ops[:len(ops)-1]
			} else {
				ops = append(ops, tok)
			}
			operand = false
		default:
			if operand {
				binary(OpOr)
			}
			out = append(out, step{words: a.Terms(tok)})
			operand = true
		}
	}
	if !operand {
		return nil, wikiextract.Errorf(wikiextract.EINVALID, "missing operand at end of query")
	}
	for len(ops) > 0 {
		op := ops[len(ops)-1]
		if op == "(" {
			return nil, wikiextract.Errorf(wikiextract.EINVALID, "unbalanced %q", op)
		}
		out = append(out, step{op: op})
		ops = ops[:len(ops)-1]
	}
	return &Expr{steps: out}, nil
}

// eval runs the postfix steps on a stack of sorted ID sets.
func (e *Expr) eval(ix *Index, field Field) ([]int, error) {
	var stack [][]int
	pop := func() ([]int, bool) {
		if len(stack) == 0 {
			return nil, false
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, true
	}

	for _, s := range e.steps {
		switch s.op {
		case "":
			stack = append(stack, ix.matchingAll(s.words, field))
		case OpNot:
			x, ok := pop()
			if !ok {
				return nil, wikiextract.Errorf(wikiextract.EINTERNAL, "query stack underflow at %s", s.op)
			}
			stack = append(stack, difference(ix.all(), x))
		default:
			y, ok1 := pop()
			x, ok2 := pop()
			if !ok1 || !ok2 {
				return nil, wikiextract.Errorf(wikiextract.EINTERNAL, "query stack underflow at %s", s.op)
			}
			if s.op == OpAnd {
				stack = append(stack, intersect(x, y))
			} else {
				stack = append(stack, union(x, y))
			}
		}
	}
	if len(stack) != 1 {
		return nil, wikiextract.Errorf(wikiextract.EINTERNAL, "query left %d results on the stack", len(stack))
	}
	return stack[0], nil
}

// matchingAll returns the sorted IDs of records containing every word.
func (ix *Index) matchingAll(words []string, field Field) []int {
	if len(words) == 0 {
		return nil
	}
	ids := ix.matching(words[0], field)
	for _, w := range words[1:] {
		ids = intersect(ids, ix.matching(w, field))
	}
	return ids
}

// The set operations below take and return ascending ID slices.

func intersect(a, b []int) []int {
	var out []int
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func union(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

func difference(a, b []int) []int {
	var out []int
	j := 0
	for _, id := range a {
		for j < len(b) && b[j] < id {
			j++
		}
		if j < len(b) && b[j] == id {
			continue
		}
		out = append(out, id)
	}
	return out
}

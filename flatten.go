package zsq

import (
	"fmt"
	"strings"
)

// Flatten turns a list of values into one placeholder fragment per value,
// plus the scalar bind parameters for all "?" occurrences across those
// fragments, in order.
//
// Scalars become "?". Lists become their elements joined with ", ",
// parenthesized when braced is true; list elements that are themselves
// lists are always flattened in braced mode, so List(List(1, 2), List(3,
// 4)) yields "(?, ?), (?, ?)". Maps become "`key` = ?" per pair, joined
// with ", ".
//
// Lists nest at most one level (tuples of scalars) and must not be
// empty, maps only appear at the top level and only hold scalars;
// anything else is ErrMalformedArguments.
func Flatten(values []Value, braced bool) ([]string, []any, error) {
	return flatten(values, braced, 0)
}

func flatten(values []Value, braced bool, depth int) ([]string, []any, error) {
	fragments := make([]string, 0, len(values))
	args := make([]any, 0, len(values))
	for _, v := range values {
		switch v.kind {
		case kindNull:
			fragments = append(fragments, "?")
			args = append(args, nil)
		case kindScalar:
			fragments = append(fragments, "?")
			args = append(args, v.scalar)
		case kindList:
			if depth >= 2 {
				return nil, nil, fmt.Errorf("zsq.Flatten: %w: list nested more than two levels deep",
					ErrMalformedArguments)
			}
			if len(v.list) == 0 {
				// "in ()" is a syntax error on every engine; catch it here
				// rather than letting the database report something cryptic.
				return nil, nil, fmt.Errorf("zsq.Flatten: %w: list is empty", ErrMalformedArguments)
			}
			f, a, err := flatten(v.list, true, depth+1)
			if err != nil {
				return nil, nil, err
			}
			frag := strings.Join(f, ", ")
			if braced {
				frag = "(" + frag + ")"
			}
			fragments = append(fragments, frag)
			args = append(args, a...)
		case kindMap:
			if depth > 0 {
				return nil, nil, fmt.Errorf("zsq.Flatten: %w: map inside a list",
					ErrMalformedArguments)
			}
			parts := make([]string, 0, len(v.pairs))
			for _, p := range v.pairs {
				if strings.ContainsRune(p.Key, '`') {
					return nil, nil, fmt.Errorf("zsq.Flatten: %w: map key %q contains a backquote",
						ErrMalformedArguments, p.Key)
				}
				switch p.Value.kind {
				case kindNull:
					args = append(args, nil)
				case kindScalar:
					args = append(args, p.Value.scalar)
				case kindInvalid:
					return nil, nil, fmt.Errorf("zsq.Flatten: map key %q: %w", p.Key, p.Value.err)
				default:
					return nil, nil, fmt.Errorf("zsq.Flatten: %w: map value for key %q is not a scalar",
						ErrMalformedArguments, p.Key)
				}
				parts = append(parts, "`"+p.Key+"` = ?")
			}
			fragments = append(fragments, strings.Join(parts, ", "))
		case kindInvalid:
			return nil, nil, fmt.Errorf("zsq.Flatten: %w", v.err)
		}
	}
	return fragments, args, nil
}

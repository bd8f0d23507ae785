package itemstore

import (
	"fmt"
	"strings"
)

// parseSetExpression parses the SET-only subset of update expressions the
// local adapters support:
//
//	SET attr = :v, #alias = :w
//
// Each assignment target is either a bare attribute name or a #alias that
// must resolve through names; each value is a :placeholder that must resolve
// through values. REMOVE, ADD and DELETE clauses, nested paths and arithmetic
// are rejected.
func parseSetExpression(expr string, names map[string]string, values map[string]any) (map[string]any, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty update expression", ErrMalformedExpression)
	}

	const keyword = "set "
	if len(trimmed) < len(keyword) || !strings.EqualFold(trimmed[:len(keyword)], keyword) {
		return nil, fmt.Errorf("%w: only SET clauses are supported, got %q", ErrUnsupportedFeature, expr)
	}

	assignments := map[string]any{}
	for _, clause := range strings.Split(trimmed[len(keyword):], ",") {
		target, placeholder, ok := strings.Cut(clause, "=")
		if !ok {
			return nil, fmt.Errorf("%w: clause %q has no assignment", ErrMalformedExpression, strings.TrimSpace(clause))
		}

		name := strings.TrimSpace(target)
		if strings.HasPrefix(name, "#") {
			resolved, ok := names[name]
			if !ok {
				return nil, fmt.Errorf("%w: attribute name %s has no entry in ExpressionAttributeNames", ErrMalformedExpression, name)
			}
			name = resolved
		}
		if name == "" || strings.ContainsAny(name, ".[ ") {
			return nil, fmt.Errorf("%w: unsupported assignment target %q", ErrUnsupportedFeature, strings.TrimSpace(target))
		}

		ref := strings.TrimSpace(placeholder)
		if !strings.HasPrefix(ref, ":") {
			return nil, fmt.Errorf("%w: value %q is not a :placeholder", ErrUnsupportedFeature, ref)
		}
		value, ok := values[ref]
		if !ok {
			return nil, fmt.Errorf("%w: placeholder %s has no entry in ExpressionAttributeValues", ErrMalformedExpression, ref)
		}

		assignments[name] = value
	}

	return assignments, nil
}

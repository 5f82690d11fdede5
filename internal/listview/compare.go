package listview

import (
	"cmp"
	"slices"
	"strings"

	"backoffice/internal/domain"
)

// Compare orders two values natively (numeric for numbers, lexicographic for
// strings) and inverts the result for descending order. The result is always
// one of -1, 0, 1.
func Compare[K cmp.Ordered](a, b K, dir domain.SortDirection) int {
	c := cmp.Compare(a, b)
	if dir == domain.Descending {
		return -c
	}
	return c
}

// By builds an ascending comparator from a key accessor.
func By[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// ByFold compares string keys case-insensitively, falling back to the exact
// bytes so that distinct keys never compare equal.
func ByFold[T any](key func(T) string) func(a, b T) int {
	return func(a, b T) int {
		ka, kb := key(a), key(b)
		if c := cmp.Compare(strings.ToLower(ka), strings.ToLower(kb)); c != 0 {
			return c
		}
		return cmp.Compare(ka, kb)
	}
}

// ByOptional compares keys that may be missing on a record. Missing keys
// sort as the smallest value.
func ByOptional[T any, K cmp.Ordered](key func(T) (K, bool)) func(a, b T) int {
	return func(a, b T) int {
		ka, okA := key(a)
		kb, okB := key(b)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return -1
		case !okB:
			return 1
		}
		return cmp.Compare(ka, kb)
	}
}

// Filter keeps the rows where any of the fields contains term as a
// case-insensitive substring. A blank term returns rows unchanged.
func Filter[T any](rows []T, term string, fields []func(T) string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || len(fields) == 0 {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(r)), term) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Sort returns a sorted copy of rows. Equal keys keep their input order in
// both directions.
func Sort[T any](rows []T, less func(a, b T) int, dir domain.SortDirection) []T {
	out := slices.Clone(rows)
	if less == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		c := less(a, b)
		if dir == domain.Descending {
			return -c
		}
		return c
	})
	return out
}

// TotalPages is ceil(n / pageSize); zero rows give zero pages.
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate slices rows to [(page-1)*size, page*size).
func Paginate[T any](rows []T, page, pageSize int) []T {
	if pageSize <= 0 || page < 1 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []T{}
	}
	end := min(start+pageSize, len(rows))
	return slices.Clone(rows[start:end])
}

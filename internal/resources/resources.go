// Package resources maps each upstream resource method to one HTTP verb and
// path. Records are normalised on receipt.
package resources

import (
	"context"
	"strconv"

	"backoffice/internal/apiclient"
)

// Page is one fetched collection plus the upstream's page count when the
// resource pages server-side.
type Page[T any] struct {
	Rows       []T
	TotalPages int
	// Total is the upstream's row count across all pages; 0 when not sent.
	Total   int
	Message string
}

type normalizer interface {
	Normalize()
}

// normalizeAll runs Normalize on every element through a pointer.
func normalizeAll[T any, PT interface {
	*T
	normalizer
}](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	for i := range rows {
		PT(&rows[i]).Normalize()
	}
	return rows
}

func normalizeOne[T any, PT interface {
	*T
	normalizer
}](v T) T {
	PT(&v).Normalize()
	return v
}

func list[T any, PT interface {
	*T
	normalizer
}](ctx context.Context, c *apiclient.Client, path string, query map[string]string) (Page[T], error) {
	env, err := apiclient.Get[[]T](ctx, c, path, query)
	if err != nil {
		return Page[T]{}, err
	}
	return Page[T]{
		Rows:       normalizeAll[T, PT](env.Data),
		TotalPages: env.TotalPage,
		Total:      env.Total,
		Message:    env.Message,
	}, nil
}

func get[T any, PT interface {
	*T
	normalizer
}](ctx context.Context, c *apiclient.Client, path string) (T, error) {
	env, err := apiclient.Get[T](ctx, c, path, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return normalizeOne[T, PT](env.Data), nil
}

func write[T any, PT interface {
	*T
	normalizer
}](ctx context.Context, c *apiclient.Client, method, path string, body any) (T, string, error) {
	env, err := apiclient.Send[T](ctx, c, method, path, body)
	if err != nil {
		var zero T
		return zero, "", err
	}
	return normalizeOne[T, PT](env.Data), env.Message, nil
}

// Ack is the body of writes that return no record.
type Ack struct {
	Message string
}

func ack(ctx context.Context, c *apiclient.Client, method, path string, body any) (Ack, error) {
	env, err := apiclient.Send[any](ctx, c, method, path, body)
	if err != nil {
		return Ack{}, err
	}
	return Ack{Message: env.Message}, nil
}

func idPath(prefix string, id int64) string {
	return prefix + strconv.FormatInt(id, 10)
}

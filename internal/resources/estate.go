package resources

import (
	"context"
	"net/http"
	"strings"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain/models"
	"backoffice/internal/forms"
)

type Estates struct {
	Client *apiclient.Client
}

func (r Estates) Types(ctx context.Context) ([]models.PropertyType, error) {
	env, err := apiclient.Get[[]models.PropertyType](ctx, r.Client, "/type-real-estate/list", nil)
	if err != nil {
		return nil, err
	}
	out := make([]models.PropertyType, 0, len(env.Data))
	for _, t := range env.Data {
		t.Name = strings.TrimSpace(t.Name)
		out = append(out, t)
	}
	return out, nil
}

func (r Estates) List(ctx context.Context) (Page[models.Property], error) {
	return list[models.Property](ctx, r.Client, "/real-estate/list", nil)
}

func (r Estates) Get(ctx context.Context, id int64) (models.Property, error) {
	return get[models.Property](ctx, r.Client, idPath("/real-estate/", id))
}

func (r Estates) Create(ctx context.Context, in forms.Estate) (models.Property, string, error) {
	return write[models.Property](ctx, r.Client, http.MethodPost, "/real-estate", in)
}

func (r Estates) Update(ctx context.Context, id int64, in forms.Estate) (models.Property, string, error) {
	return write[models.Property](ctx, r.Client, http.MethodPut, idPath("/real-estate/", id), in)
}

func (r Estates) Delete(ctx context.Context, id int64) (Ack, error) {
	return ack(ctx, r.Client, http.MethodDelete, idPath("/real-estate/", id), nil)
}

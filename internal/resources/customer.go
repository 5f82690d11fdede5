package resources

import (
	"context"
	"net/http"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain/models"
	"backoffice/internal/forms"
)

type Customers struct {
	Client *apiclient.Client
}

// List pages server-side: params carries page, limit and optional search,
// sort and order.
func (r Customers) List(ctx context.Context, params map[string]string) (Page[models.Customer], error) {
	return list[models.Customer](ctx, r.Client, "/customer/list", params)
}

func (r Customers) Get(ctx context.Context, id int64) (models.Customer, error) {
	return get[models.Customer](ctx, r.Client, idPath("/customer/", id))
}

func (r Customers) Create(ctx context.Context, in forms.Customer) (models.Customer, string, error) {
	return write[models.Customer](ctx, r.Client, http.MethodPost, "/customer", in)
}

func (r Customers) Update(ctx context.Context, id int64, in forms.Customer) (models.Customer, string, error) {
	return write[models.Customer](ctx, r.Client, http.MethodPut, idPath("/customer/", id), in)
}

func (r Customers) CreateRequest(ctx context.Context, in forms.CustomerRequest) (Ack, error) {
	return ack(ctx, r.Client, http.MethodPost, "/customer/request", in)
}

package resources

import (
	"context"
	"net/http"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain/models"
	"backoffice/internal/forms"
)

type StaffMembers struct {
	Client *apiclient.Client
}

func (r StaffMembers) List(ctx context.Context) (Page[models.Staff], error) {
	return list[models.Staff](ctx, r.Client, "/staff/list", nil)
}

func (r StaffMembers) Get(ctx context.Context, id int64) (models.Staff, error) {
	return get[models.Staff](ctx, r.Client, idPath("/staff/detail/", id))
}

func (r StaffMembers) Create(ctx context.Context, in forms.Staff) (models.Staff, string, error) {
	return write[models.Staff](ctx, r.Client, http.MethodPost, "/staff/create", in)
}

func (r StaffMembers) Update(ctx context.Context, id int64, in forms.StaffUpdate) (models.Staff, string, error) {
	return write[models.Staff](ctx, r.Client, http.MethodPut, idPath("/staff/update/", id), in)
}

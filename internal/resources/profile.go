package resources

import (
	"context"
	"net/http"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain/models"
	"backoffice/internal/forms"
)

type Profiles struct {
	Client *apiclient.Client
}

func (r Profiles) Me(ctx context.Context) (models.Profile, error) {
	return get[models.Profile](ctx, r.Client, "/me")
}

func (r Profiles) Update(ctx context.Context, in forms.Profile) (models.Profile, string, error) {
	return write[models.Profile](ctx, r.Client, http.MethodPut, "/me", in)
}

func (r Profiles) ChangePassword(ctx context.Context, in forms.ChangePassword) (Ack, error) {
	return ack(ctx, r.Client, http.MethodPut, "/change-pass", in)
}

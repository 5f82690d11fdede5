package resources

import (
	"context"
	"net/http"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain/models"
	"backoffice/internal/forms"
)

type Consignments struct {
	Client *apiclient.Client
}

func (r Consignments) List(ctx context.Context) (Page[models.Consignment], error) {
	return list[models.Consignment](ctx, r.Client, "/consignment-contract/list", nil)
}

func (r Consignments) Get(ctx context.Context, id int64) (models.Consignment, error) {
	return get[models.Consignment](ctx, r.Client, idPath("/consignment-contract/", id))
}

func (r Consignments) Create(ctx context.Context, in forms.Consignment) (models.Consignment, string, error) {
	return write[models.Consignment](ctx, r.Client, http.MethodPost, "/consignment-contract", in)
}

func (r Consignments) Cancel(ctx context.Context, id int64) (Ack, error) {
	return ack(ctx, r.Client, http.MethodPut, idPath("/consignment-contract/cancel/", id), nil)
}

func (r Consignments) Delete(ctx context.Context, id int64) (Ack, error) {
	return ack(ctx, r.Client, http.MethodDelete, idPath("/consignment-contract/", id), nil)
}

type Deposits struct {
	Client *apiclient.Client
}

func (r Deposits) List(ctx context.Context) (Page[models.Deposit], error) {
	return list[models.Deposit](ctx, r.Client, "/deposit-contract/list", nil)
}

func (r Deposits) Get(ctx context.Context, id int64) (models.Deposit, error) {
	return get[models.Deposit](ctx, r.Client, idPath("/deposit-contract/", id))
}

func (r Deposits) Create(ctx context.Context, in forms.Deposit) (models.Deposit, string, error) {
	return write[models.Deposit](ctx, r.Client, http.MethodPost, "/deposit-contract", in)
}

func (r Deposits) Cancel(ctx context.Context, id int64) (Ack, error) {
	return ack(ctx, r.Client, http.MethodPut, idPath("/deposit-contract/cancel/", id), nil)
}

func (r Deposits) Delete(ctx context.Context, id int64) (Ack, error) {
	return ack(ctx, r.Client, http.MethodDelete, idPath("/deposit-contract/", id), nil)
}

type Transfers struct {
	Client *apiclient.Client
}

func (r Transfers) List(ctx context.Context) (Page[models.Transfer], error) {
	return list[models.Transfer](ctx, r.Client, "/transfer-contract/list", nil)
}

func (r Transfers) Get(ctx context.Context, id int64) (models.Transfer, error) {
	return get[models.Transfer](ctx, r.Client, idPath("/transfer-contract/", id))
}

func (r Transfers) Create(ctx context.Context, in forms.Transfer) (models.Transfer, string, error) {
	return write[models.Transfer](ctx, r.Client, http.MethodPost, "/transfer-contract", in)
}

func (r Transfers) Delete(ctx context.Context, id int64) (Ack, error) {
	return ack(ctx, r.Client, http.MethodDelete, idPath("/transfer-contract/", id), nil)
}

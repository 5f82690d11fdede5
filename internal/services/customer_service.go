package services

import (
	"context"
	"fmt"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain/models"
	"backoffice/internal/forms"
	"backoffice/internal/resources"
	"backoffice/internal/utils"
)

// CustomerService serves the customer pages of one workspace.
type CustomerService struct {
	WS        *Workspace
	RequestID string
}

func (s CustomerService) api() resources.Customers {
	return resources.Customers{Client: scoped(s.WS, s.RequestID)}
}

func (s CustomerService) List(ctx context.Context, in ListInput) (ListResult[models.Customer], error) {
	return listPage(ctx, s.WS, s.WS.Customers, resCustomerList, in, s.api().List)
}

func (s CustomerService) Get(ctx context.Context, id int64) (models.Customer, error) {
	return cached(ctx, s.WS, detailKey(resCustomer, id), func(ctx context.Context) (models.Customer, error) {
		return s.api().Get(ctx, id)
	})
}

func (s CustomerService) Create(ctx context.Context, in forms.Customer) (models.Customer, string, error) {
	c, msg, err := s.api().Create(ctx, in)
	if err != nil {
		return c, "", err
	}
	invalidate(s.WS, resCustomerList)
	utils.LogEvent(s.RequestID, "customers", "create", fmt.Sprintf("khid=%d", c.ID))
	return c, msg, nil
}

func (s CustomerService) Update(ctx context.Context, id int64, in forms.Customer) (models.Customer, string, error) {
	c, msg, err := s.api().Update(ctx, id, in)
	if err != nil {
		return c, "", err
	}
	// owner names are embedded in listings and contracts
	invalidate(s.WS, resCustomerList, resCustomer, resEstateList, resEstate,
		resConsignmentList, resDepositList, resTransferList)
	utils.LogEvent(s.RequestID, "customers", "update", fmt.Sprintf("khid=%d", id))
	return c, msg, nil
}

func (s CustomerService) CreateRequest(ctx context.Context, in forms.CustomerRequest) (resources.Ack, error) {
	ack, err := s.api().CreateRequest(ctx, in)
	if err != nil {
		return ack, err
	}
	invalidate(s.WS, resCustomer)
	utils.LogEvent(s.RequestID, "customers", "create_request", fmt.Sprintf("khid=%d", in.CustomerID))
	return ack, nil
}

// scoped tags upstream calls with the request id for log correlation.
func scoped(ws *Workspace, requestID string) *apiclient.Client {
	return ws.Client.WithRequestID(requestID)
}

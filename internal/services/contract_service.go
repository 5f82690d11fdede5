package services

import (
	"context"
	"fmt"

	"backoffice/internal/domain/models"
	"backoffice/internal/forms"
	"backoffice/internal/resources"
	"backoffice/internal/utils"
)

// Contracts change the status of the property they cover, so every contract
// write also drops the property caches.

type ConsignmentService struct {
	WS        *Workspace
	RequestID string
}

func (s ConsignmentService) api() resources.Consignments {
	return resources.Consignments{Client: scoped(s.WS, s.RequestID)}
}

func (s ConsignmentService) List(ctx context.Context, in ListInput) (ListResult[models.Consignment], error) {
	return listPage(ctx, s.WS, s.WS.Consignments, resConsignmentList, in, func(ctx context.Context, _ map[string]string) (resources.Page[models.Consignment], error) {
		return s.api().List(ctx)
	})
}

func (s ConsignmentService) Get(ctx context.Context, id int64) (models.Consignment, error) {
	return cached(ctx, s.WS, detailKey(resConsignment, id), func(ctx context.Context) (models.Consignment, error) {
		return s.api().Get(ctx, id)
	})
}

func (s ConsignmentService) Create(ctx context.Context, in forms.Consignment) (models.Consignment, string, error) {
	c, msg, err := s.api().Create(ctx, in)
	if err != nil {
		return c, "", err
	}
	invalidate(s.WS, resConsignmentList, resEstateList, resEstate)
	utils.LogEvent(s.RequestID, "consignments", "create", fmt.Sprintf("kgid=%d bdsid=%d", c.ID, in.PropertyID))
	return c, msg, nil
}

func (s ConsignmentService) Cancel(ctx context.Context, id int64) (resources.Ack, error) {
	ack, err := s.api().Cancel(ctx, id)
	if err != nil {
		return ack, err
	}
	invalidate(s.WS, resConsignmentList, resConsignment, resEstateList, resEstate)
	utils.LogEvent(s.RequestID, "consignments", "cancel", fmt.Sprintf("kgid=%d", id))
	return ack, nil
}

func (s ConsignmentService) Delete(ctx context.Context, id int64) (resources.Ack, error) {
	ack, err := s.api().Delete(ctx, id)
	if err != nil {
		return ack, err
	}
	invalidate(s.WS, resConsignmentList, resConsignment, resEstateList, resEstate)
	utils.LogEvent(s.RequestID, "consignments", "delete", fmt.Sprintf("kgid=%d", id))
	return ack, nil
}

type DepositService struct {
	WS        *Workspace
	RequestID string
}

func (s DepositService) api() resources.Deposits {
	return resources.Deposits{Client: scoped(s.WS, s.RequestID)}
}

func (s DepositService) List(ctx context.Context, in ListInput) (ListResult[models.Deposit], error) {
	return listPage(ctx, s.WS, s.WS.Deposits, resDepositList, in, func(ctx context.Context, _ map[string]string) (resources.Page[models.Deposit], error) {
		return s.api().List(ctx)
	})
}

func (s DepositService) Get(ctx context.Context, id int64) (models.Deposit, error) {
	return cached(ctx, s.WS, detailKey(resDeposit, id), func(ctx context.Context) (models.Deposit, error) {
		return s.api().Get(ctx, id)
	})
}

func (s DepositService) Create(ctx context.Context, in forms.Deposit) (models.Deposit, string, error) {
	d, msg, err := s.api().Create(ctx, in)
	if err != nil {
		return d, "", err
	}
	invalidate(s.WS, resDepositList, resEstateList, resEstate)
	utils.LogEvent(s.RequestID, "deposits", "create", fmt.Sprintf("dcid=%d bdsid=%d", d.ID, in.PropertyID))
	return d, msg, nil
}

func (s DepositService) Cancel(ctx context.Context, id int64) (resources.Ack, error) {
	ack, err := s.api().Cancel(ctx, id)
	if err != nil {
		return ack, err
	}
	invalidate(s.WS, resDepositList, resDeposit, resEstateList, resEstate)
	utils.LogEvent(s.RequestID, "deposits", "cancel", fmt.Sprintf("dcid=%d", id))
	return ack, nil
}

func (s DepositService) Delete(ctx context.Context, id int64) (resources.Ack, error) {
	ack, err := s.api().Delete(ctx, id)
	if err != nil {
		return ack, err
	}
	invalidate(s.WS, resDepositList, resDeposit, resEstateList, resEstate)
	utils.LogEvent(s.RequestID, "deposits", "delete", fmt.Sprintf("dcid=%d", id))
	return ack, nil
}

type TransferService struct {
	WS        *Workspace
	RequestID string
}

func (s TransferService) api() resources.Transfers {
	return resources.Transfers{Client: scoped(s.WS, s.RequestID)}
}

func (s TransferService) List(ctx context.Context, in ListInput) (ListResult[models.Transfer], error) {
	return listPage(ctx, s.WS, s.WS.Transfers, resTransferList, in, func(ctx context.Context, _ map[string]string) (resources.Page[models.Transfer], error) {
		return s.api().List(ctx)
	})
}

func (s TransferService) Get(ctx context.Context, id int64) (models.Transfer, error) {
	return cached(ctx, s.WS, detailKey(resTransfer, id), func(ctx context.Context) (models.Transfer, error) {
		return s.api().Get(ctx, id)
	})
}

// Create completes a deposit, so the deposit caches go too.
func (s TransferService) Create(ctx context.Context, in forms.Transfer) (models.Transfer, string, error) {
	t, msg, err := s.api().Create(ctx, in)
	if err != nil {
		return t, "", err
	}
	invalidate(s.WS, resTransferList, resDepositList, resDeposit, resEstateList, resEstate)
	utils.LogEvent(s.RequestID, "transfers", "create", fmt.Sprintf("cnid=%d dcid=%d", t.ID, in.DepositID))
	return t, msg, nil
}

func (s TransferService) Delete(ctx context.Context, id int64) (resources.Ack, error) {
	ack, err := s.api().Delete(ctx, id)
	if err != nil {
		return ack, err
	}
	invalidate(s.WS, resTransferList, resTransfer, resDepositList, resDeposit, resEstateList, resEstate)
	utils.LogEvent(s.RequestID, "transfers", "delete", fmt.Sprintf("cnid=%d", id))
	return ack, nil
}

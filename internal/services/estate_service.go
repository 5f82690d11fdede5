package services

import (
	"context"
	"fmt"

	"backoffice/internal/domain/models"
	"backoffice/internal/forms"
	"backoffice/internal/querycache"
	"backoffice/internal/resources"
	"backoffice/internal/utils"
)

type EstateService struct {
	WS        *Workspace
	RequestID string
}

func (s EstateService) api() resources.Estates {
	return resources.Estates{Client: scoped(s.WS, s.RequestID)}
}

func (s EstateService) Types(ctx context.Context) ([]models.PropertyType, error) {
	return cached(ctx, s.WS, querycache.NewKey(resEstateTypes, nil), s.api().Types)
}

func (s EstateService) List(ctx context.Context, in ListInput) (ListResult[models.Property], error) {
	return listPage(ctx, s.WS, s.WS.Properties, resEstateList, in, func(ctx context.Context, _ map[string]string) (resources.Page[models.Property], error) {
		return s.api().List(ctx)
	})
}

func (s EstateService) Get(ctx context.Context, id int64) (models.Property, error) {
	return cached(ctx, s.WS, detailKey(resEstate, id), func(ctx context.Context) (models.Property, error) {
		return s.api().Get(ctx, id)
	})
}

func (s EstateService) Create(ctx context.Context, in forms.Estate) (models.Property, string, error) {
	p, msg, err := s.api().Create(ctx, in)
	if err != nil {
		return p, "", err
	}
	invalidate(s.WS, resEstateList)
	utils.LogEvent(s.RequestID, "estates", "create", fmt.Sprintf("bdsid=%d", p.ID))
	return p, msg, nil
}

func (s EstateService) Update(ctx context.Context, id int64, in forms.Estate) (models.Property, string, error) {
	p, msg, err := s.api().Update(ctx, id, in)
	if err != nil {
		return p, "", err
	}
	invalidate(s.WS, resEstateList, resEstate, resConsignmentList, resDepositList, resTransferList)
	utils.LogEvent(s.RequestID, "estates", "update", fmt.Sprintf("bdsid=%d", id))
	return p, msg, nil
}

func (s EstateService) Delete(ctx context.Context, id int64) (resources.Ack, error) {
	ack, err := s.api().Delete(ctx, id)
	if err != nil {
		return ack, err
	}
	invalidate(s.WS, resEstateList, resEstate)
	utils.LogEvent(s.RequestID, "estates", "delete", fmt.Sprintf("bdsid=%d", id))
	return ack, nil
}

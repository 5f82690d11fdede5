package services

import (
	"context"
	"fmt"

	"backoffice/internal/domain/models"
	"backoffice/internal/forms"
	"backoffice/internal/resources"
	"backoffice/internal/utils"
)

// StaffService lists staff for everyone; writes are gated to admins by the
// router.
type StaffService struct {
	WS        *Workspace
	RequestID string
}

func (s StaffService) api() resources.StaffMembers {
	return resources.StaffMembers{Client: scoped(s.WS, s.RequestID)}
}

func (s StaffService) List(ctx context.Context, in ListInput) (ListResult[models.Staff], error) {
	return listPage(ctx, s.WS, s.WS.Staff, resStaffList, in, func(ctx context.Context, _ map[string]string) (resources.Page[models.Staff], error) {
		return s.api().List(ctx)
	})
}

func (s StaffService) Get(ctx context.Context, id int64) (models.Staff, error) {
	return cached(ctx, s.WS, detailKey(resStaff, id), func(ctx context.Context) (models.Staff, error) {
		return s.api().Get(ctx, id)
	})
}

func (s StaffService) Create(ctx context.Context, in forms.Staff) (models.Staff, string, error) {
	st, msg, err := s.api().Create(ctx, in)
	if err != nil {
		return st, "", err
	}
	invalidate(s.WS, resStaffList)
	utils.LogEvent(s.RequestID, "staff", "create", fmt.Sprintf("nvid=%d", st.ID))
	return st, msg, nil
}

func (s StaffService) Update(ctx context.Context, id int64, in forms.StaffUpdate) (models.Staff, string, error) {
	st, msg, err := s.api().Update(ctx, id, in)
	if err != nil {
		return st, "", err
	}
	invalidate(s.WS, resStaffList, resStaff, resProfile)
	utils.LogEvent(s.RequestID, "staff", "update", fmt.Sprintf("nvid=%d", id))
	return st, msg, nil
}

package services

import (
	"context"

	"backoffice/internal/domain/models"
	"backoffice/internal/forms"
	"backoffice/internal/querycache"
	"backoffice/internal/resources"
	"backoffice/internal/utils"
)

type ProfileService struct {
	WS        *Workspace
	RequestID string
}

func (s ProfileService) api() resources.Profiles {
	return resources.Profiles{Client: scoped(s.WS, s.RequestID)}
}

func (s ProfileService) Me(ctx context.Context) (models.Profile, error) {
	return cached(ctx, s.WS, querycache.NewKey(resProfile, nil), s.api().Me)
}

func (s ProfileService) Update(ctx context.Context, in forms.Profile) (models.Profile, string, error) {
	p, msg, err := s.api().Update(ctx, in)
	if err != nil {
		return p, "", err
	}
	invalidate(s.WS, resProfile, resStaffList, resStaff)
	utils.LogEvent(s.RequestID, "profile", "update", "account="+p.Account)
	return p, msg, nil
}

func (s ProfileService) ChangePassword(ctx context.Context, in forms.ChangePassword) (resources.Ack, error) {
	ack, err := s.api().ChangePassword(ctx, in)
	if err != nil {
		return ack, err
	}
	utils.LogEvent(s.RequestID, "profile", "change_password", "ok")
	return ack, nil
}

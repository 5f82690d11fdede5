package services

import (
	"context"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain/models"
	"backoffice/internal/forms"
	"backoffice/internal/resources"
	"backoffice/internal/session"
	"backoffice/internal/utils"
)

// AuthService moves a browser between Anonymous and Authenticated.
type AuthService struct {
	Client    *apiclient.Client
	Sessions  *session.Manager
	Registry  *Registry
	RequestID string
}

// Login checks the credentials upstream and starts a session. The returned
// token goes back to the browser.
func (s AuthService) Login(ctx context.Context, in forms.Login) (*session.Session, string, models.Staff, error) {
	auth := resources.Auth{Client: s.Client.WithRequestID(s.RequestID)}
	staff, creds, err := auth.Login(ctx, in)
	if err != nil {
		utils.LogEvent(s.RequestID, "auth", "login_failed", "account="+in.Account)
		return nil, "", models.Staff{}, err
	}
	sess, token, err := s.Sessions.Start(ctx, staff, creds)
	if err != nil {
		return nil, "", models.Staff{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", "account="+staff.Account+" role="+staff.Role.String())
	return sess, token, staff, nil
}

// Logout ends the session. The upstream logout is best effort: the local
// session is gone either way.
func (s AuthService) Logout(ctx context.Context, sess *session.Session) error {
	if !sess.Authenticated() {
		return session.ErrInvalidTransition
	}
	ws := s.Registry.For(sess)
	if err := (resources.Auth{Client: scoped(ws, s.RequestID)}).Logout(ctx); err != nil {
		utils.LogEvent(s.RequestID, "auth", "upstream_logout", "error="+err.Error())
	}
	id, account := sess.ID, sess.Account
	s.Registry.Drop(id)
	if err := s.Sessions.End(ctx, sess); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "logout", "account="+account)
	return nil
}

// Me re-reads the signed-in staff member from the upstream.
func (s AuthService) Me(ctx context.Context, ws *Workspace) (models.Staff, error) {
	return (resources.Auth{Client: scoped(ws, s.RequestID)}).Me(ctx)
}

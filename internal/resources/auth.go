package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/forms"
)

type Auth struct {
	Client *apiclient.Client
}

type loginBody struct {
	Data        models.Staff `json:"data"`
	Token       string       `json:"token"`
	AccessToken string       `json:"accessToken"`
	Message     string       `json:"message"`
}

// Login authenticates against the upstream and returns the staff member
// with the credentials (cookies and/or bearer token) to use afterwards.
func (a Auth) Login(ctx context.Context, in forms.Login) (models.Staff, apiclient.Credentials, error) {
	var body loginBody
	resp, err := a.Client.Do(ctx, http.MethodPost, "/auth/login", nil, in, &body)
	if err != nil {
		return models.Staff{}, apiclient.Credentials{}, err
	}
	if strings.TrimSpace(body.Data.Account) == "" {
		// the upstream answers 200 with an empty user on bad credentials
		msg := body.Message
		if msg == "" {
			msg = "invalid account or password"
		}
		return models.Staff{}, apiclient.Credentials{}, domain.UnauthorizedError{Msg: msg}
	}
	body.Data.Normalize()

	creds := apiclient.Credentials{Cookie: apiclient.CookieHeader(resp.Cookies)}
	creds.Token = strings.TrimSpace(body.Token)
	if creds.Token == "" {
		creds.Token = strings.TrimSpace(body.AccessToken)
	}
	return body.Data, creds, nil
}

func (a Auth) Logout(ctx context.Context) error {
	_, err := a.Client.Do(ctx, http.MethodPost, "/auth/logout", nil, json.RawMessage(`{}`), nil)
	return err
}

func (a Auth) Me(ctx context.Context) (models.Staff, error) {
	return get[models.Staff](ctx, a.Client, "/auth/profile")
}

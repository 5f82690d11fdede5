package handlers

import (
	"strconv"
	"strings"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain"
	"backoffice/internal/forms"
	"backoffice/internal/http/middleware"
	"backoffice/internal/services"
	"backoffice/internal/session"

	"github.com/gin-gonic/gin"
)

// API holds what the handlers share. One value serves every request.
type API struct {
	Client   *apiclient.Client
	Sessions *session.Manager
	Registry *services.Registry
	// StorePing reports session store health; nil for the in-memory store.
	StorePing    func(c *gin.Context) error
	SecureCookie bool
}

// scope is what a protected handler works with.
type scope struct {
	sess *session.Session
	ws   *services.Workspace
	rid  string
}

func (h *API) scope(c *gin.Context) scope {
	sess := middleware.CurrentSession(c)
	return scope{sess: sess, ws: h.Registry.For(sess), rid: middleware.GetRequestID(c)}
}

// bindForm decodes and validates the JSON body into a T.
func bindForm[T any](c *gin.Context) (T, bool) {
	var in T
	if c.Request.Body == nil {
		RespondDomainError(c, domain.ValidationError{Msg: "empty body"})
		return in, false
	}
	if err := forms.Decode(c.Request.Body, &in, true); err != nil {
		RespondDomainError(c, err)
		return in, false
	}
	return in, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid id"})
		return 0, false
	}
	return id, true
}

// listInput reads ?page=&search=&toggle=. An absent search leaves the
// stored term alone; an empty one clears it.
func listInput(c *gin.Context) services.ListInput {
	var in services.ListInput
	if p, err := strconv.Atoi(strings.TrimSpace(c.Query("page"))); err == nil && p > 0 {
		in.Page = p
	}
	if s, ok := c.GetQuery("search"); ok {
		in.Search = &s
	}
	in.Toggle = strings.TrimSpace(c.Query("toggle"))
	return in
}

type writeResult struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

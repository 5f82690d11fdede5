package handlers

import (
	"net/http"

	"backoffice/internal/domain"
	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *API) Health(c *gin.Context) {
	store := "memory"
	if h.StorePing != nil {
		store = "ok"
		if err := h.StorePing(c); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "sessionStore": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessionStore": store, "workspaces": h.Registry.Len()})
}

// NavLink is one sidebar entry.
type NavLink struct {
	Href      string `json:"href"`
	Label     string `json:"label"`
	CanCreate bool   `json:"canCreate"`
}

// GET /api/nav: sidebar links for the signed-in role.
func (h *API) Nav(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	admin := sess.Role == domain.RoleAdmin
	links := []NavLink{
		{Href: "/staffs", Label: "Staff", CanCreate: admin},
		{Href: "/customers", Label: "Customer", CanCreate: true},
		{Href: "/properties", Label: "Property", CanCreate: true},
		{Href: "/consignments", Label: "Consignment", CanCreate: true},
		{Href: "/deposits", Label: "Deposit", CanCreate: true},
		{Href: "/transfers", Label: "Transfer", CanCreate: true},
		{Href: "/profile", Label: "Profile"},
	}
	c.JSON(http.StatusOK, gin.H{"data": links, "account": sess.Account, "role": sess.Role.String()})
}

// GET /api/dashboard
func (h *API) Dashboard(c *gin.Context) {
	s := h.scope(c)
	sum, err := services.DashboardService{WS: s.ws, RequestID: s.rid}.Summary(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sum})
}

package api

import (
	"log"
	stdhttp "net/http"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"
	h "backoffice/internal/http/handlers"
	"backoffice/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, api *h.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	public := r.Group("/api")
	public.GET("/health", api.Health)
	public.POST("/auth/login", api.Login)

	protected := r.Group("/api", middleware.RequireSession(api.Sessions, h.RespondDomainError))
	adminOnly := middleware.RequireRoles(h.RespondDomainError, domain.RoleAdmin)
	{
		protected.POST("/auth/logout", api.Logout)
		protected.GET("/auth/me", api.Me)
		protected.GET("/nav", api.Nav)
		protected.GET("/dashboard", api.Dashboard)

		staff := protected.Group("/staffs")
		staff.GET("", api.ListStaff)
		staff.GET("/:id", api.GetStaff)
		staff.POST("", adminOnly, api.CreateStaff)
		staff.PUT("/:id", adminOnly, api.UpdateStaff)

		customers := protected.Group("/customers")
		customers.GET("", api.ListCustomers)
		customers.GET("/:id", api.GetCustomer)
		customers.POST("", api.CreateCustomer)
		customers.PUT("/:id", api.UpdateCustomer)
		customers.POST("/requests", api.CreateCustomerRequest)

		properties := protected.Group("/properties")
		properties.GET("", api.ListProperties)
		properties.GET("/types", api.ListPropertyTypes)
		properties.GET("/:id", api.GetProperty)
		properties.POST("", api.CreateProperty)
		properties.PUT("/:id", api.UpdateProperty)
		properties.DELETE("/:id", api.DeleteProperty)

		consignments := protected.Group("/consignments")
		consignments.GET("", api.ListConsignments)
		consignments.GET("/:id", api.GetConsignment)
		consignments.GET("/:id/pdf", api.ConsignmentPDF)
		consignments.POST("", api.CreateConsignment)
		consignments.PUT("/:id/cancel", api.CancelConsignment)
		consignments.DELETE("/:id", api.DeleteConsignment)

		deposits := protected.Group("/deposits")
		deposits.GET("", api.ListDeposits)
		deposits.GET("/:id", api.GetDeposit)
		deposits.GET("/:id/pdf", api.DepositPDF)
		deposits.POST("", api.CreateDeposit)
		deposits.PUT("/:id/cancel", api.CancelDeposit)
		deposits.DELETE("/:id", api.DeleteDeposit)

		transfers := protected.Group("/transfers")
		transfers.GET("", api.ListTransfers)
		transfers.GET("/:id", api.GetTransfer)
		transfers.GET("/:id/pdf", api.TransferPDF)
		transfers.POST("", api.CreateTransfer)
		transfers.DELETE("/:id", api.DeleteTransfer)

		protected.GET("/profile", api.GetProfile)
		protected.PUT("/profile", api.UpdateProfile)
		protected.PUT("/profile/password", api.ChangePassword)
	}

	return r
}

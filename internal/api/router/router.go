package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"raja-digital/config"
	"raja-digital/internal/api/handler"
	"raja-digital/internal/api/middleware"
	"raja-digital/internal/model"
	"raja-digital/pkg/jwt"
)

// Deps optional Redis-backed collaborators; nil fields disable the feature.
type Deps struct {
	Tokens  middleware.TokenChecker
	Limiter middleware.RateLimiter
}

// Setup builds the gin engine with every route under /api.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, deps Deps, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	adminOnly := middleware.RoleAuth(model.RoleAdmin, model.RoleSuperAdmin)
	superOnly := middleware.RoleAuth(model.RoleSuperAdmin)

	api := r.Group("/api")
	{
		api.POST("/auth/login",
			middleware.RateLimit(deps.Limiter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow, logger),
			h.Auth.Login)

		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, deps.Tokens))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)

			drivers := authorized.Group("/drivers")
			{
				drivers.GET("", h.Driver.ListDrivers)
				drivers.GET("/active", h.Driver.ListActiveDrivers)
				drivers.GET("/export/:format", h.Export.Drivers)
				drivers.GET("/:id", h.Driver.GetDriver)
				drivers.POST("", superOnly, h.Driver.CreateDriver)
				drivers.PUT("/:id", superOnly, h.Driver.UpdateDriver)
				drivers.PATCH("/:id/suspend", superOnly, h.Driver.SuspendDriver)
				drivers.PATCH("/:id/activate", superOnly, h.Driver.ActivateDriver)
				drivers.DELETE("/:id", superOnly, h.Driver.DeleteDriver)
			}

			sij := authorized.Group("/sij")
			{
				sij.GET("", h.SIJ.ListSIJ)
				sij.GET("/price", h.SIJ.Price)
				sij.GET("/export/:format", h.Export.SIJ)
				sij.GET("/:id", h.SIJ.GetSIJ)
				sij.GET("/:id/receipt", h.SIJ.ReceiptHTML)
				sij.GET("/:id/receipt/thermal", h.SIJ.ReceiptThermal)
				sij.POST("", adminOnly, h.SIJ.CreateSIJ)
				sij.PATCH("/:id/void", adminOnly, h.SIJ.VoidSIJ)
				sij.PUT("/:id", superOnly, h.SIJ.UpdateSIJ)
				sij.DELETE("/:id", superOnly, h.SIJ.DeleteSIJ)
			}

			ritase := authorized.Group("/ritase")
			{
				ritase.GET("", h.Ritase.ListRitase)
				ritase.GET("/export/:format", h.Export.Ritase)
				ritase.POST("", adminOnly, h.Ritase.CreateRitase)
				ritase.PUT("/:id", superOnly, h.Ritase.UpdateRitase)
				ritase.DELETE("/:id", superOnly, h.Ritase.DeleteRitase)
			}

			authorized.GET("/absences", h.Absence.ListAbsences)
			authorized.POST("/absences", adminOnly, h.Absence.SetAbsence)
			authorized.GET("/absence-reasons", h.Absence.Reasons)

			authorized.GET("/weekly-report", h.Report.WeeklyReport)
			authorized.GET("/weekly-report/export/:format", h.Export.Weekly)
			authorized.GET("/revenue-report", h.Report.RevenueReport)
			authorized.GET("/revenue-report/export/:format", h.Export.Revenue)

			authorized.GET("/dashboard", h.Dashboard.Dashboard)
			authorized.GET("/dashboard/admin", adminOnly, h.Dashboard.Admin)
			authorized.GET("/dashboard/superadmin", superOnly, h.Dashboard.SuperAdmin)

			authorized.GET("/audit", h.Audit.ListAudit)
			authorized.GET("/audit/export", h.Export.Audit)

			users := authorized.Group("/users", superOnly)
			{
				users.GET("", h.User.ListUsers)
				users.POST("", h.User.CreateUser)
				users.PUT("/:id", h.User.UpdateUser)
				users.DELETE("/:id", h.User.DeleteUser)
			}
		}
	}

	return r
}

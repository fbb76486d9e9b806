package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phillip/hostel-fest-payments/config"
	"github.com/phillip/hostel-fest-payments/controllers"
	"github.com/phillip/hostel-fest-payments/middleware"
	"github.com/phillip/hostel-fest-payments/navigation"
	"github.com/phillip/hostel-fest-payments/services"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, app *services.App) {
	// public
	r.GET("/healthz", controllers.Health())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/event", controllers.GetEvent(app))

	r.POST("/auth/register", controllers.Register(cfg, app))
	r.POST("/auth/login", controllers.Login(cfg, app))
	r.POST("/auth/logout", controllers.Logout(app))

	ui := r.Group("/ui")
	{
		ui.GET("", controllers.GetUI(app))
		ui.POST("/view", controllers.SetView(app))
		ui.POST("/tabs/:group/:tab", controllers.SelectTab(app))
		ui.POST("/modals/sms/close", controllers.CloseSMS(app))
		ui.GET("/toasts", controllers.ListToasts(app))
	}

	// protected
	auth := middleware.AuthMiddleware(cfg, app)

	me := r.Group("/me")
	me.Use(auth, middleware.RequireRole(navigation.RoleUser))
	{
		me.GET("/status", controllers.GetStatus(app))
		me.GET("/history", controllers.GetHistory(app))
		me.POST("/payments", controllers.SubmitPayment(app))
	}

	admin := r.Group("/admin")
	admin.Use(auth, middleware.RequireRole(navigation.RoleAdmin))
	{
		admin.GET("/stats", controllers.GetStats(app))
		admin.GET("/payments", controllers.ListPayments(app))
		admin.GET("/users", controllers.ListUsers(app))
		admin.GET("/notifications", controllers.ListNotifications(app))
		admin.POST("/reminders", controllers.SendReminders(app))
		admin.POST("/backup", controllers.Backup(app))
	}
}

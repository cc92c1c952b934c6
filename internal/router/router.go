package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cheesy-parts/cheesyparts/internal/handlers"
	"github.com/cheesy-parts/cheesyparts/internal/middleware"
	"github.com/cheesy-parts/cheesyparts/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	editor := middleware.RequirePermission(types.PermissionEditor)
	admin := middleware.RequirePermission(types.PermissionAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.RegisterUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PUT("/me", middleware.AuthMiddleware(), handlers.UpdateMe)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.GET("", handlers.ListProjects)
			projects.POST("", editor, handlers.CreateProject)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PUT("/:project_id", editor, handlers.UpdateProject)
			projects.DELETE("/:project_id", editor, handlers.DeleteProject)

			projects.GET("/:project_id/dashboard", handlers.GetDashboard)

			projects.GET("/:project_id/parts", handlers.ListParts)
			projects.POST("/:project_id/parts", editor, handlers.CreatePart)

			projects.GET("/:project_id/orders", handlers.ListOrders)
			projects.GET("/:project_id/orders/stats", handlers.GetOrderStats)

			projects.GET("/:project_id/order-items", handlers.ListOrderItems)
			projects.POST("/:project_id/order-items", editor, handlers.CreateOrderItem)
		}

		parts := api.Group("/parts", middleware.AuthMiddleware())
		{
			parts.GET("/:part_id", handlers.GetPart)
			parts.PUT("/:part_id", editor, handlers.UpdatePart)
			parts.PATCH("/:part_id/status", editor, handlers.UpdatePartStatus)
			parts.DELETE("/:part_id", editor, handlers.DeletePart)
		}

		orders := api.Group("/orders", middleware.AuthMiddleware())
		{
			orders.GET("/:order_id", handlers.GetOrder)
			orders.PUT("/:order_id", editor, handlers.UpdateOrder)
			orders.DELETE("/:order_id", editor, handlers.DeleteOrder)
		}

		orderItems := api.Group("/order-items", middleware.AuthMiddleware())
		{
			orderItems.PUT("/:item_id", editor, handlers.UpdateOrderItem)
			orderItems.DELETE("/:item_id", editor, handlers.DeleteOrderItem)
		}

		users := api.Group("/users", middleware.AuthMiddleware(), admin)
		{
			users.GET("", handlers.ListUsers)
			users.PUT("/:user_id", handlers.AdminUpdateUser)
			users.DELETE("/:user_id", handlers.AdminDeleteUser)
		}

		settings := api.Group("/settings", middleware.AuthMiddleware())
		{
			settings.GET("", handlers.GetSettings)
			settings.PUT("", admin, handlers.UpdateSettings)
		}
	}

	return r
}

package routes

import (
	"food-delivery/controllers"
	"food-delivery/metrics"
	"food-delivery/middleware"
	"food-delivery/models"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers bundles everything the router dispatches to.
type Handlers struct {
	Tokens     middleware.TokenValidator
	Public     *controllers.PublicController
	Auth       *controllers.AuthController
	Profile    *controllers.ProfileController
	Users      *controllers.UserController
	Addresses  *controllers.AddressController
	Categories *controllers.CategoryController
	Restaurant *controllers.RestaurantController
	Menu       *controllers.MenuController
	Cart       *controllers.CartController
	Orders     *controllers.OrderController
	History    *controllers.HistoryController
	WebSocket  gin.HandlerFunc
}

func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", metrics.Handler())
	router.GET("/ws", h.WebSocket)

	api := router.Group("/api")

	api.GET("/public/health", h.Public.Health)
	api.GET("/public/info", h.Public.Info)

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/password-reset/request", h.Auth.RequestPasswordReset)
	api.POST("/auth/password-reset/verify", h.Auth.VerifyResetCode)
	api.POST("/auth/password-reset/confirm", h.Auth.ResetPassword)

	api.GET("/categories", h.Categories.GetAllCategories)
	api.GET("/restaurants", h.Restaurant.GetAllRestaurants)
	api.GET("/restaurants/:id", h.Restaurant.GetRestaurantByID)
	api.GET("/restaurants/:id/menu", h.Menu.GetRestaurantMenu)
	api.GET("/restaurants/:id/menu-items", h.Menu.GetMenuItems)
	api.GET("/menu-items/:id", h.Menu.GetMenuItemByID)

	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware(h.Tokens))
	{
		auth.POST("/auth/logout", h.Auth.Logout)

		auth.GET("/users/me", h.Profile.GetProfile)
		auth.PATCH("/users/me", h.Profile.UpdateProfile)
		auth.PATCH("/users/me/password", h.Profile.ChangePassword)
		auth.POST("/users/me/photo", h.Profile.UpdateProfilePhoto)

		auth.GET("/addresses", h.Addresses.ListAddresses)
		auth.POST("/addresses", h.Addresses.CreateAddress)
		auth.GET("/addresses/:id", h.Addresses.GetAddress)
		auth.PUT("/addresses/:id", h.Addresses.UpdateAddress)
		auth.DELETE("/addresses/:id", h.Addresses.DeleteAddress)
		auth.PATCH("/addresses/:id/default", h.Addresses.SetDefaultAddress)

		auth.GET("/cart", h.Cart.GetCart)
		auth.DELETE("/cart", h.Cart.ClearCart)
		auth.POST("/cart/items", h.Cart.AddCartItem)
		auth.PATCH("/cart/items/:id", h.Cart.UpdateCartItem)
		auth.DELETE("/cart/items/:id", h.Cart.RemoveCartItem)

		auth.POST("/orders", h.Orders.CreateOrder)
		auth.GET("/orders", h.Orders.GetMyOrders)
		auth.GET("/orders/:id", h.Orders.GetOrderByID)
		auth.GET("/orders/:id/history", h.History.GetHistory)
		auth.POST("/orders/:id/cancel", h.Orders.CancelOrder)
	}

	manage := auth.Group("/")
	manage.Use(middleware.RequireRoles(models.RoleRestaurantOwner, models.RoleAdmin))
	{
		manage.PATCH("/orders/:id/status", h.Orders.UpdateOrderStatus)

		manage.POST("/restaurants/:id/menu-items", h.Menu.CreateMenuItem)
		manage.PUT("/menu-items/:id", h.Menu.UpdateMenuItem)
		manage.DELETE("/menu-items/:id", h.Menu.DeleteMenuItem)
		manage.PATCH("/menu-items/:id/availability", h.Menu.SetMenuItemAvailability)
		manage.POST("/menu-items/:id/image", h.Menu.UploadMenuItemImage)

		manage.GET("/owner/restaurants", h.Restaurant.GetMyRestaurants)
		manage.PUT("/owner/restaurants/:id", h.Restaurant.UpdateRestaurant)
		manage.PATCH("/owner/restaurants/:id/status", h.Restaurant.UpdateRestaurantStatus)
		manage.GET("/owner/restaurants/:id/orders", h.Restaurant.GetRestaurantOrders)
	}

	admin := auth.Group("/")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		admin.POST("/categories", h.Categories.CreateCategory)
		admin.PUT("/categories/:id", h.Categories.UpdateCategory)
		admin.DELETE("/categories/:id", h.Categories.DeleteCategory)

		admin.GET("/admin/dashboard", h.Users.GetDashboard)
		admin.GET("/admin/users", h.Users.GetAllUsers)
		admin.GET("/admin/users/:id", h.Users.GetUserByID)
		admin.DELETE("/admin/users/:id", h.Users.DeleteUser)

		admin.POST("/admin/restaurants", h.Restaurant.CreateRestaurant)
		admin.DELETE("/admin/restaurants/:id", h.Restaurant.DeleteRestaurant)
		admin.GET("/admin/restaurants/:id/orders", h.Restaurant.GetRestaurantOrders)
	}
}

package userRoutes

import (
	userControllers "complaintdesk/controllers/userControllers"
	"complaintdesk/middleware"
	userValidator "complaintdesk/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	user := app.Group("/user")

	user.Get("/profile", middleware.JWTMiddleware, userControllers.GetProfile)
	user.Put("/profile", userValidator.UpdateProfile(), middleware.JWTMiddleware, userControllers.UpdateProfile)
}

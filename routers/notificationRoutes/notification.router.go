package notificationRoutes

import (
	notificationControllers "complaintdesk/controllers/notification"
	"complaintdesk/middleware"
	notificationValidators "complaintdesk/validators/notification"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App) {
	notification := app.Group("/notification")

	notification.Get("/list", notificationValidators.List(), middleware.JWTMiddleware, notificationControllers.NotificationList)
	notification.Put("/read", notificationValidators.MarkRead(), middleware.JWTMiddleware, notificationControllers.MarkRead)
	notification.Put("/read-all", middleware.JWTMiddleware, notificationControllers.MarkAllRead)
}

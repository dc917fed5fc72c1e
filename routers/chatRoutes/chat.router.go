package chatRoutes

import (
	chatControllers "complaintdesk/controllers/chat"
	"complaintdesk/middleware"
	chatValidators "complaintdesk/validators/chat"

	"github.com/gofiber/fiber/v2"
)

func SetupChatRoutes(app *fiber.App) {
	chat := app.Group("/chat")

	chat.Post("/", chatValidators.StreamChat(), middleware.JWTMiddleware, chatControllers.StreamChat)
	chat.Post("/format-complaint", chatValidators.FormatComplaint(), middleware.JWTMiddleware, chatControllers.FormatComplaint)
}

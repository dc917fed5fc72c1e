package callRoutes

import (
	callControllers "complaintdesk/controllers/call"
	"complaintdesk/middleware"
	callValidators "complaintdesk/validators/call"

	"github.com/gofiber/fiber/v2"
)

func SetupCallRoutes(app *fiber.App) {
	call := app.Group("/call")

	call.Post("/create-video-room", callValidators.CreateRoom(), middleware.JWTMiddleware, callControllers.CreateVideoRoom)
	call.Post("/create-voice-room", callValidators.CreateRoom(), middleware.JWTMiddleware, callControllers.CreateVoiceRoom)
	call.Get("/active/:complaintId", middleware.JWTMiddleware, callControllers.GetActiveCall)
	call.Post("/end", callValidators.EndCall(), middleware.JWTMiddleware, callControllers.EndCall)
}

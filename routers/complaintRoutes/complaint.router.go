package complaintRoutes

import (
	complaintControllers "complaintdesk/controllers/complaint"
	"complaintdesk/middleware"
	complaintValidators "complaintdesk/validators/complaint"

	"github.com/gofiber/fiber/v2"
)

func SetupComplaintRoutes(app *fiber.App) {
	complaint := app.Group("/complaint")

	complaint.Post("/create", complaintValidators.CreateComplaint(), middleware.JWTMiddleware, complaintControllers.CreateComplaint)
	complaint.Get("/list", complaintValidators.ListComplaints(), middleware.JWTMiddleware, complaintControllers.ComplaintList)
	complaint.Put("/update", complaintValidators.UpdateComplaint(), middleware.JWTMiddleware, complaintControllers.UpdateComplaint)
	complaint.Delete("/delete/:id", middleware.JWTMiddleware, complaintControllers.DeleteComplaint)

	complaint.Get("/admin/list", complaintValidators.ListComplaints(), middleware.JWTMiddleware, middleware.AdminOnly(), complaintControllers.AdminComplaintList)
	complaint.Put("/admin/status", complaintValidators.AdminUpdateStatus(), middleware.JWTMiddleware, middleware.AdminOnly(), complaintControllers.AdminUpdateStatus)
	complaint.Get("/admin/stats", middleware.JWTMiddleware, middleware.AdminOnly(), complaintControllers.AdminStats)

	// Param route last so it does not shadow /list and /admin/*
	complaint.Get("/:id", middleware.JWTMiddleware, complaintControllers.GetComplaint)
}

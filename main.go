package main

import (
	"complaintdesk/callprovider"
	"complaintdesk/config"
	"complaintdesk/database"
	authRoutes "complaintdesk/routers/authRoutes"
	callRoutes "complaintdesk/routers/callRoutes"
	chatRoutes "complaintdesk/routers/chatRoutes"
	complaintRoutes "complaintdesk/routers/complaintRoutes"
	notificationRoutes "complaintdesk/routers/notificationRoutes"
	userProfileRoutes "complaintdesk/routers/userRoutes"
	"complaintdesk/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Call providers fail fast here if their secrets are missing
	callprovider.Init()

	// Background sweep for expired call rooms
	utils.InitializeCallSweeper()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded complaint media
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	userProfileRoutes.SetupUserRoutes(app)
	complaintRoutes.SetupComplaintRoutes(app)
	callRoutes.SetupCallRoutes(app)
	chatRoutes.SetupChatRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}

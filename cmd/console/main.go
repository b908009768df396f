package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-inventory-console/internal/console"
	"go-inventory-console/internal/session"
	"go-inventory-console/internal/ws"
	"go-inventory-console/pkg/inventoryapi"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	apiURL := os.Getenv("INVENTORY_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:3000/api/v1"
	}

	// 2. Session context: the login/logout handlers are its only writers,
	// everything else reads
	sessions := session.NewContext()

	// 3. Inventory API client, bearing the live session's credential
	client := inventoryapi.NewClient(apiURL, sessions.Token)

	// 4. Notification hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Wire the console core
	notifier := console.NewNotifier(wsHub)
	processor := console.NewProcessor(sessions, client, notifier)
	guard := console.NewGuard(sessions)
	handler := console.NewHandler(sessions, client, processor, notifier)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Inventory Console v1.0",
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())

	// 7. Screens
	console.RegisterRoutes(app, guard, handler)

	// WebSocket route for live notices
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful shutdown
	go func() {
		port := os.Getenv("CONSOLE_PORT")
		if port == "" {
			port = "4000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down console...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Console forced to shutdown:", err)
	}

	log.Println("Console exited")
}

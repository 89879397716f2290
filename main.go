package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"wallbot-backend/handlers"
	"wallbot-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
)

func main() {
	// .env 파일 로드
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env 파일을 찾을 수 없습니다.")
	}

	// MySQL 연결
	if err := services.InitDatabase(); err != nil {
		log.Fatalf("❌ DB 초기화 실패: %v", err)
	}

	// 로깅 시스템 초기화
	// flushSize: 50 (로그 50개마다 일괄 저장)
	// flushInterval: 10초 (매 10초마다 자동 저장)
	services.InitLogging(50, 10*time.Second)
	defer services.StopLogging() // 종료 시 남은 로그 저장

	// 핸들러 의존성 초기화
	handlers.InitHandlers(services.GetDB())

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:5173, http://localhost:3000",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// 요청 감사 로그 미들웨어
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := fmt.Sprintf("%d", start.UnixMilli())

		err := c.Next()

		duration := time.Since(start).Seconds()
		services.LogRequest(
			"INFO",
			fmt.Sprintf("%s %s - %d", c.Method(), c.OriginalURL(), c.Response().StatusCode()),
			requestID,
			duration,
		)
		return err
	})

	go handlers.Manager.Start()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("벽면 마감 로봇 제어 서버가 실행 중입니다.")
	})

	api := app.Group("/api")

	api.Get("/health", handlers.HandleHealth)
	api.Get("/status", handlers.HandleSystemStatus)

	// 경로 생성 / 저장 / 조회 / 삭제
	api.Post("/trajectory/generate", handlers.HandleGenerateTrajectory)
	api.Post("/trajectory/save", handlers.HandleSaveTrajectory)
	api.Get("/trajectories", handlers.HandleListTrajectories)
	api.Delete("/trajectory/:id", handlers.HandleDeleteTrajectory)

	// 실행 시뮬레이션
	api.Post("/trajectory/:id/execute", handlers.HandleExecuteTrajectory)
	api.Get("/sessions/:id/actions", handlers.HandleGetSessionActions)

	// 메시지 큐
	api.Get("/messages", handlers.HandleGetMessages)
	api.Post("/messages/process", handlers.HandleProcessMessages)

	// WebSocket
	app.Use("/websocket", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/websocket/web", websocket.New(handlers.HandleWebClientWebSocket))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("🚀 서버 시작: http://localhost:%s", port)
	log.Printf("📡 WebSocket: ws://localhost:%s/websocket/web", port)
	log.Printf("📐 경로 생성: POST http://localhost:%s/api/trajectory/generate", port)
	log.Fatal(app.Listen(":" + port))
}

package handlers

import (
	"time"

	"wallbot-backend/services"

	"github.com/gofiber/fiber/v2"
)

// HandleHealth - 서버 상태 확인
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "OK",
		"clients": Manager.GetClientCount(),
		"time":    time.Now().Format(time.RFC3339),
	})
}

// HandleSystemStatus - 시스템 통계 조회
func HandleSystemStatus(c *fiber.Ctx) error {
	trajectoryCount, err := trajectoryStore.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "통계 조회 실패",
		})
	}

	totalRequests, avgDuration, err := services.GetRequestStats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "통계 조회 실패",
		})
	}

	recentLogs, err := services.GetRecentLogs(10)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "로그 조회 실패",
		})
	}

	return c.JSON(fiber.Map{
		"status": "operational",
		"statistics": fiber.Map{
			"total_trajectories":   trajectoryCount,
			"total_requests":       totalRequests,
			"average_request_time": avgDuration,
		},
		"recent_logs": recentLogs,
	})
}

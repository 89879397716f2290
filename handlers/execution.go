package handlers

import (
	"errors"
	"strconv"

	"wallbot-backend/services"

	"github.com/gofiber/fiber/v2"
)

// HandleExecuteTrajectory - 저장된 경로 실행 시뮬레이션
func HandleExecuteTrajectory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "잘못된 경로 ID입니다",
		})
	}

	result, err := executor.Execute(uint(id))
	if err != nil {
		var nfErr *services.NotFoundError
		if errors.As(err, &nfErr) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": nfErr.Error(),
			})
		}
		var exErr *services.ExecutionError
		if errors.As(err, &exErr) {
			// 부분 기록은 그대로 남는다
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":      exErr.Error(),
				"session_id": exErr.SessionID,
				"status":     "FAILED",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "경로 실행 실패",
		})
	}

	return c.JSON(result)
}

// HandleGetSessionActions - 세션의 로봇 액션 기록 조회
func HandleGetSessionActions(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	if _, err := sessionStore.Get(sessionID); err != nil {
		var nfErr *services.NotFoundError
		if errors.As(err, &nfErr) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": nfErr.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "세션 조회 실패",
		})
	}

	actions, err := actionLog.SessionActions(sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "액션 기록 조회 실패",
		})
	}

	return c.JSON(fiber.Map{
		"session_id":    sessionID,
		"actions":       actions,
		"total_actions": len(actions),
	})
}

// HandleGetMessages - 메시지 큐 조회
func HandleGetMessages(c *fiber.Ctx) error {
	msgType := c.Query("type")
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	messages, err := messageBroker.Messages(msgType, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "메시지 조회 실패",
		})
	}

	return c.JSON(fiber.Map{
		"messages": messages,
		"count":    len(messages),
	})
}

// HandleProcessMessages - 미처리 메시지 수동 처리 트리거
func HandleProcessMessages(c *fiber.Ctx) error {
	processed, err := messageBroker.ProcessPending()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "메시지 처리 실패",
		})
	}

	return c.JSON(fiber.Map{
		"processed_messages": processed,
		"status":             "completed",
	})
}

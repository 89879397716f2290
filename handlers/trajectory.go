package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"wallbot-backend/models"
	"wallbot-backend/planner"
	"wallbot-backend/services"

	"github.com/gofiber/fiber/v2"
)

// TrajectoryRequest - 경로 생성 요청
// tool_width를 생략하면 기본 도구 설정을 통째로 사용한다
type TrajectoryRequest struct {
	WallWidth    float64           `json:"wall_width"`
	WallHeight   float64           `json:"wall_height"`
	Obstacles    []models.Obstacle `json:"obstacles"`
	ToolWidth    float64           `json:"tool_width"`
	Overlap      float64           `json:"overlap"`
	SafetyMargin float64           `json:"safety_margin"`
}

// SaveTrajectoryRequest - 생성된 경로 저장 요청
type SaveTrajectoryRequest struct {
	WallWidth    float64                  `json:"wall_width"`
	WallHeight   float64                  `json:"wall_height"`
	Obstacles    []models.Obstacle        `json:"obstacles"`
	Trajectory   []models.TrajectoryPoint `json:"trajectory"`
	PlanningTime float64                  `json:"planning_time"`
}

// HandleGenerateTrajectory - 커버리지 경로 생성
func HandleGenerateTrajectory(c *fiber.Ctx) error {
	var req TrajectoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "잘못된 요청 형식입니다",
		})
	}

	tool := models.DefaultToolConfig()
	if req.ToolWidth != 0 {
		tool = models.ToolConfig{
			ToolWidth:    req.ToolWidth,
			Overlap:      req.Overlap,
			SafetyMargin: req.SafetyMargin,
		}
	}
	wall := models.Wall{Width: req.WallWidth, Height: req.WallHeight}

	log.Printf("📐 경로 생성 요청: 벽 %.2fx%.2fm, 장애물 %d개, 도구 폭 %.2fm",
		wall.Width, wall.Height, len(req.Obstacles), tool.ToolWidth)

	result, err := planner.NewCoveragePlanner(tool).Plan(wall, req.Obstacles)
	if err != nil {
		var vErr *planner.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   vErr.Message,
				"field":   vErr.Field,
			})
		}
		var pErr *planner.PlanningError
		if errors.As(err, &pErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"error":   pErr.Message,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "경로 생성 실패",
		})
	}

	log.Printf("✅ 경로 생성 완료: %d개 웨이포인트 (%.3fs)",
		len(result.Points), result.Duration.Seconds())

	return c.JSON(fiber.Map{
		"success":    true,
		"trajectory": result.Points,
		"metadata": fiber.Map{
			"wall_dimensions": fmt.Sprintf("%gx%gm", wall.Width, wall.Height),
			"tool_config": fiber.Map{
				"tool_width":      tool.ToolWidth,
				"overlap":         tool.Overlap,
				"safety_margin":   tool.SafetyMargin,
				"effective_width": tool.EffectiveWidth(),
			},
			"obstacles_count": len(req.Obstacles),
			"points_count":    len(result.Points),
			"generation_time": fmt.Sprintf("%.3fs", result.Duration.Seconds()),
		},
	})
}

// HandleSaveTrajectory - 생성된 경로 저장
func HandleSaveTrajectory(c *fiber.Ctx) error {
	var req SaveTrajectoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "잘못된 요청 형식입니다",
		})
	}
	if len(req.Trajectory) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "저장할 경로가 비어 있습니다",
		})
	}

	wall := models.Wall{Width: req.WallWidth, Height: req.WallHeight}
	id, err := trajectoryStore.Save(wall, req.Obstacles, req.Trajectory, req.PlanningTime)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "경로 저장 실패",
		})
	}

	log.Printf("💾 경로 저장 완료: ID=%d, %d개 포인트", id, len(req.Trajectory))

	return c.JSON(fiber.Map{
		"id":        id,
		"message":   "경로가 저장되었습니다",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// HandleListTrajectories - 저장된 경로 목록 조회
func HandleListTrajectories(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	trajectories, err := trajectoryStore.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "경로 목록 조회 실패",
		})
	}

	return c.JSON(fiber.Map{
		"trajectories": trajectories,
		"count":        len(trajectories),
	})
}

// HandleDeleteTrajectory - 경로 삭제
func HandleDeleteTrajectory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "잘못된 경로 ID입니다",
		})
	}

	if err := trajectoryStore.Delete(uint(id)); err != nil {
		var nfErr *services.NotFoundError
		if errors.As(err, &nfErr) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": nfErr.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "경로 삭제 실패",
		})
	}

	log.Printf("🗑️ 경로 삭제 완료: ID=%d", id)

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("경로 %d이(가) 삭제되었습니다", id),
	})
}

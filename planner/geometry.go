package planner

import (
	"fmt"
	"math"

	"wallbot-backend/models"
)

// Validate - 벽/장애물/도구 파라미터 일관성 검증
// 실패 시 문제 필드를 명시한 ValidationError 반환 (암묵적 보정 없음)
func Validate(wall models.Wall, obstacles []models.Obstacle, tool models.ToolConfig) error {
	if wall.Width <= 0 {
		return &ValidationError{Field: "wall_width", Message: "벽 폭은 양수여야 합니다"}
	}
	if wall.Height <= 0 {
		return &ValidationError{Field: "wall_height", Message: "벽 높이는 양수여야 합니다"}
	}
	if tool.ToolWidth <= 0 {
		return &ValidationError{Field: "tool_width", Message: "도구 폭은 양수여야 합니다"}
	}
	// overlap 상한은 tool_width 미만 (유효 폭이 0이 되면 스트립 분해 불가)
	if tool.Overlap < 0 || tool.Overlap >= tool.ToolWidth {
		return &ValidationError{Field: "overlap", Message: "overlap은 0 이상 tool_width 미만이어야 합니다"}
	}
	if tool.SafetyMargin < 0 {
		return &ValidationError{Field: "safety_margin", Message: "안전 마진은 음수일 수 없습니다"}
	}

	for i, ob := range obstacles {
		if ob.Width <= 0 || ob.Height <= 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("obstacles[%d]", i),
				Message: "장애물 크기는 양수여야 합니다",
			}
		}
		if ob.X < 0 || ob.Y < 0 || ob.X+ob.Width > wall.Width || ob.Y+ob.Height > wall.Height {
			return &ValidationError{
				Field:   fmt.Sprintf("obstacles[%d]", i),
				Message: "장애물이 벽 범위를 벗어났습니다",
			}
		}
	}
	return nil
}

// InflateObstacles - 각 장애물을 안전 마진만큼 사방으로 팽창
// 벽 가장자리에 닿은 장애물은 가장자리 너머로 팽창하지 않는다 (경계 클램프)
func InflateObstacles(wall models.Wall, obstacles []models.Obstacle, margin float64) []models.InflatedObstacle {
	inflated := make([]models.InflatedObstacle, 0, len(obstacles))
	for _, ob := range obstacles {
		inflated = append(inflated, models.InflatedObstacle{
			Source: ob,
			MinX:   math.Max(0, ob.X-margin),
			MinY:   math.Max(0, ob.Y-margin),
			MaxX:   math.Min(wall.Width, ob.X+ob.Width+margin),
			MaxY:   math.Min(wall.Height, ob.Y+ob.Height+margin),
		})
	}
	return inflated
}

package planner

import (
	"math"

	"wallbot-backend/models"
)

// Strip - 세로 스트립 (중심선 x 좌표와 진행 방향)
type Strip struct {
	Index     int
	X         float64 // 중심선 x 좌표
	Ascending bool    // true면 y 증가 방향으로 진행 (지그재그)
}

// BuildStrips - 벽 폭을 유효 도구 폭 간격의 세로 스트립으로 분해
// strip_count = ceil(wall_width / effective_width)
// 마지막 스트립의 중심선은 벽을 넘지 않도록 wall_width - tool_width/2로 제한
func BuildStrips(wallWidth float64, tool models.ToolConfig) []Strip {
	effective := tool.EffectiveWidth()
	count := int(math.Ceil(wallWidth / effective))

	strips := make([]Strip, 0, count)
	for i := 0; i < count; i++ {
		x := float64(i)*effective + tool.ToolWidth/2
		limit := wallWidth - tool.ToolWidth/2
		if x > limit {
			x = limit
		}
		strips = append(strips, Strip{
			Index:     i,
			X:         x,
			Ascending: i%2 == 0, // 스트립 0은 y 증가 방향
		})
	}
	return strips
}

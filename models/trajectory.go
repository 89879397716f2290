package models

import (
	"encoding/json"
	"time"
)

// TrajectoryPoint - 경로 웨이포인트 (인덱스 = 실행 순서)
type TrajectoryPoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Heading    float64 `json:"heading"`     // 라디안, 다음 웨이포인트 방향
	Speed      float64 `json:"speed"`       // m/s
	ToolActive bool    `json:"tool_active"` // true면 도구 작동 중
}

// Trajectory - 저장된 커버리지 경로 (gorm)
// 포인트 시퀀스와 장애물 스냅샷은 JSON으로 직렬화해서 보관한다
type Trajectory struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	WallWidth      float64   `json:"wall_width"`
	WallHeight     float64   `json:"wall_height"`
	ObstacleData   string    `gorm:"type:text" json:"-"` // 장애물 스냅샷 JSON
	TrajectoryData string    `gorm:"type:text" json:"-"` // 포인트 시퀀스 JSON
	TotalPoints    int       `json:"total_points"`
	PlanningTime   float64   `json:"planning_time"` // 계획 소요 시간 (초)
}

// Points - 저장된 포인트 시퀀스 역직렬화
func (t *Trajectory) Points() ([]TrajectoryPoint, error) {
	var points []TrajectoryPoint
	if err := json.Unmarshal([]byte(t.TrajectoryData), &points); err != nil {
		return nil, err
	}
	return points, nil
}

// SetPoints - 포인트 시퀀스 직렬화 후 저장
func (t *Trajectory) SetPoints(points []TrajectoryPoint) error {
	data, err := json.Marshal(points)
	if err != nil {
		return err
	}
	t.TrajectoryData = string(data)
	t.TotalPoints = len(points)
	return nil
}

// Obstacles - 장애물 스냅샷 역직렬화
func (t *Trajectory) Obstacles() ([]Obstacle, error) {
	var obstacles []Obstacle
	if t.ObstacleData == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(t.ObstacleData), &obstacles); err != nil {
		return nil, err
	}
	return obstacles, nil
}

// SetObstacles - 장애물 스냅샷 직렬화 후 저장
func (t *Trajectory) SetObstacles(obstacles []Obstacle) error {
	data, err := json.Marshal(obstacles)
	if err != nil {
		return err
	}
	t.ObstacleData = string(data)
	return nil
}

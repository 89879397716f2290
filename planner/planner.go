package planner

import (
	"math"
	"time"

	"wallbot-backend/models"
)

// CoveragePlanner - 벽면 지그재그 커버리지 경로 계획기
type CoveragePlanner struct {
	tool models.ToolConfig
}

// NewCoveragePlanner - CoveragePlanner 생성
func NewCoveragePlanner(tool models.ToolConfig) *CoveragePlanner {
	return &CoveragePlanner{tool: tool}
}

// PlanResult - 계획 결과 (웨이포인트 시퀀스 + 메타데이터)
type PlanResult struct {
	Points    []models.TrajectoryPoint
	Wall      models.Wall
	Obstacles []models.Obstacle
	Inflated  []models.InflatedObstacle
	Duration  time.Duration // 계획 소요 시간 (벽시계 기준)
}

// Plan - 전체 파이프라인 실행
// 검증 → 장애물 팽창 → 스트립 분해 → 경로 연결 → 웨이포인트 방출
// 동일한 (벽, 장애물, 도구) 입력은 항상 동일한 시퀀스를 반환한다
func (p *CoveragePlanner) Plan(wall models.Wall, obstacles []models.Obstacle) (*PlanResult, error) {
	start := time.Now()

	if err := Validate(wall, obstacles, p.tool); err != nil {
		return nil, err
	}

	inflated := InflateObstacles(wall, obstacles, p.tool.SafetyMargin)
	strips := BuildStrips(wall.Width, p.tool)

	legs, err := StitchPath(wall, strips, inflated)
	if err != nil {
		return nil, err
	}

	points := flattenLegs(legs)
	assignHeadings(points)

	return &PlanResult{
		Points:    points,
		Wall:      wall,
		Obstacles: obstacles,
		Inflated:  inflated,
		Duration:  time.Since(start),
	}, nil
}

// flattenLegs - 레그 시퀀스를 웨이포인트 시퀀스로 평탄화
// 레그 경계에서 생기는 연속 동일 위치는 첫 번째 것만 남긴다
func flattenLegs(legs []Leg) []models.TrajectoryPoint {
	var points []models.TrajectoryPoint
	for _, leg := range legs {
		for _, pt := range leg.Points {
			if n := len(points); n > 0 && samePosition(points[n-1], pt) {
				continue
			}
			points = append(points, pt)
		}
	}
	return points
}

// samePosition - 두 웨이포인트 위치 동일 여부 (허용 오차 내)
func samePosition(a, b models.TrajectoryPoint) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

// assignHeadings - 각 웨이포인트에 다음 웨이포인트 방향의 heading 부여
// 마지막 웨이포인트는 직전 heading을 반복한다
func assignHeadings(points []models.TrajectoryPoint) {
	for i := 0; i < len(points)-1; i++ {
		dx := points[i+1].X - points[i].X
		dy := points[i+1].Y - points[i].Y
		points[i].Heading = math.Atan2(dy, dx)
	}
	if n := len(points); n > 1 {
		points[n-1].Heading = points[n-2].Heading
	}
}

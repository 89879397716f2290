package planner

import (
	"math"

	"wallbot-backend/models"
)

// 속도 대역 (m/s)
const (
	WorkSpeed    = 0.10 // 도구 작동 중 (마감 작업)
	TransitSpeed = 0.15 // 스트립 간 이동
	DetourSpeed  = 0.20 // 장애물 우회
)

// Leg - 같은 도구 상태를 공유하는 연속 웨이포인트 묶음
// heading은 평탄화 이후에 부여되므로 여기서는 비워 둔다
type Leg struct {
	Points     []models.TrajectoryPoint
	ToolActive bool
}

// StitchPath - 스트립별 작업 구간을 왼쪽부터 하나의 지그재그 경로로 연결
// 작업 구간은 도구 활성 레그, 스킵 갭은 장애물 x 범위 바깥 우회 레그,
// 스트립 사이는 단일 이동 레그로 잇는다
// 작업 구간이 전혀 없으면 PlanningError 반환
func StitchPath(wall models.Wall, strips []Strip, obstacles []models.InflatedObstacle) ([]Leg, error) {
	var legs []Leg
	havePrev := false
	prevX, prevY := 0.0, 0.0

	for _, strip := range strips {
		intervals := WorkIntervals(strip, wall.Height, obstacles)
		if len(intervals) == 0 {
			// 스트립 전체 차단: 웨이포인트 없이 건너뛴다
			continue
		}

		// 진행 방향에 맞게 구간 순서/끝점 정렬
		ordered := orientIntervals(intervals, strip.Ascending)

		// 스트립 간 이동 레그 (이전 스트립 끝 → 새 스트립 시작)
		if havePrev {
			legs = append(legs, Leg{
				ToolActive: false,
				Points: []models.TrajectoryPoint{
					{X: prevX, Y: prevY, Speed: TransitSpeed},
					{X: strip.X, Y: ordered[0][0], Speed: TransitSpeed},
				},
			})
		}

		for j, iv := range ordered {
			startY, endY := iv[0], iv[1]

			// 같은 스트립의 이전 작업 구간과 스킵 갭으로 분리된 경우 우회 레그 삽입
			if j > 0 {
				legs = append(legs, detourLeg(strip.X, ordered[j-1][1], startY, obstacles))
			}

			legs = append(legs, Leg{
				ToolActive: true,
				Points: []models.TrajectoryPoint{
					{X: strip.X, Y: startY, Speed: WorkSpeed, ToolActive: true},
					{X: strip.X, Y: endY, Speed: WorkSpeed, ToolActive: true},
				},
			})
			prevX, prevY = strip.X, endY
		}
		havePrev = true
	}

	if len(legs) == 0 {
		return nil, &PlanningError{Message: "전체 벽면이 차단되어 작업 구간이 없습니다"}
	}
	return legs, nil
}

// orientIntervals - 작업 구간을 진행 방향 순서의 [시작, 끝] 쌍으로 변환
func orientIntervals(intervals []Interval, ascending bool) [][2]float64 {
	ordered := make([][2]float64, 0, len(intervals))
	if ascending {
		for _, iv := range intervals {
			ordered = append(ordered, [2]float64{iv.Start, iv.End})
		}
		return ordered
	}
	for i := len(intervals) - 1; i >= 0; i-- {
		ordered = append(ordered, [2]float64{intervals[i].End, intervals[i].Start})
	}
	return ordered
}

// detourLeg - 스킵 갭을 장애물 x 범위 바깥으로 우회하는 도구 비활성 레그
// 갭 y 구간과 겹치는 팽창 장애물들의 x 범위를 벗어난 쪽으로 빠져나가
// 갭을 통과한 뒤 다음 작업 구간 시작점에서 중심선으로 복귀한다
// 우회 수직 구간이 인접 장애물에 걸리지 않도록 x 범위가 맞닿는
// 장애물까지 고정점 반복으로 확장한다
// 우회 방향은 이탈 거리가 짧은 쪽 (동률이면 왼쪽)
func detourLeg(x, fromY, toY float64, obstacles []models.InflatedObstacle) Leg {
	lo, hi := math.Min(fromY, toY), math.Max(fromY, toY)

	left, right := x, x
	for expanded := true; expanded; {
		expanded = false
		for _, ob := range obstacles {
			// 갭 y 구간과 겹치는 장애물만 고려
			if ob.MaxY < lo-epsilon || ob.MinY > hi+epsilon {
				continue
			}
			if ob.MaxX < left-epsilon || ob.MinX > right+epsilon {
				continue
			}
			if ob.MinX < left {
				left = ob.MinX
				expanded = true
			}
			if ob.MaxX > right {
				right = ob.MaxX
				expanded = true
			}
		}
	}

	// 팽창 장애물은 벽 경계로 클램프되어 있으므로 양쪽 모두 벽 안이다
	detourX := left
	if right-x < x-left {
		detourX = right
	}

	return Leg{
		ToolActive: false,
		Points: []models.TrajectoryPoint{
			{X: x, Y: fromY, Speed: DetourSpeed},
			{X: detourX, Y: fromY, Speed: DetourSpeed},
			{X: detourX, Y: toY, Speed: DetourSpeed},
			{X: x, Y: toY, Speed: DetourSpeed},
		},
	}
}

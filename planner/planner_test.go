package planner

import (
	"math"
	"testing"

	"wallbot-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCountProperty(t *testing.T) {
	cases := []struct {
		wallWidth float64
		toolWidth float64
		overlap   float64
	}{
		{5, 0.5, 0},
		{5, 0.5, 0.1},
		{10, 0.1, 0.02},
		{3.3, 0.25, 0.05},
		{1, 0.3, 0.29},
		{0.2, 0.5, 0},
	}

	for _, tc := range cases {
		strips := BuildStrips(tc.wallWidth, models.ToolConfig{
			ToolWidth: tc.toolWidth,
			Overlap:   tc.overlap,
		})
		want := int(math.Ceil(tc.wallWidth / (tc.toolWidth - tc.overlap)))
		assert.Len(t, strips, want, "벽 %.2f / 도구 %.2f / 겹침 %.2f", tc.wallWidth, tc.toolWidth, tc.overlap)
	}
}

func TestStripCenterlineClamp(t *testing.T) {
	// 마지막 스트립 중심선은 wall_width - tool_width/2를 넘지 않는다
	strips := BuildStrips(5.2, models.ToolConfig{ToolWidth: 0.5, Overlap: 0})
	limit := 5.2 - 0.25
	for _, s := range strips {
		assert.LessOrEqual(t, s.X, limit)
	}
	assert.Equal(t, limit, strips[len(strips)-1].X)
}

func TestStripDirectionAlternates(t *testing.T) {
	strips := BuildStrips(2, models.ToolConfig{ToolWidth: 0.5, Overlap: 0})
	require.Len(t, strips, 4)
	assert.True(t, strips[0].Ascending)
	assert.False(t, strips[1].Ascending)
	assert.True(t, strips[2].Ascending)
	assert.False(t, strips[3].Ascending)
}

func TestValidateRejectsBadInput(t *testing.T) {
	wall := models.Wall{Width: 5, Height: 5}
	tool := models.ToolConfig{ToolWidth: 0.5, Overlap: 0.1, SafetyMargin: 0.05}

	cases := []struct {
		name      string
		wall      models.Wall
		obstacles []models.Obstacle
		tool      models.ToolConfig
		field     string
	}{
		{"벽 폭 0", models.Wall{Width: 0, Height: 5}, nil, tool, "wall_width"},
		{"벽 높이 음수", models.Wall{Width: 5, Height: -1}, nil, tool, "wall_height"},
		{"도구 폭 0", wall, nil, models.ToolConfig{ToolWidth: 0}, "tool_width"},
		{"겹침 음수", wall, nil, models.ToolConfig{ToolWidth: 0.5, Overlap: -0.1}, "overlap"},
		{"겹침이 도구 폭과 동일", wall, nil, models.ToolConfig{ToolWidth: 0.5, Overlap: 0.5}, "overlap"},
		{"안전 마진 음수", wall, nil, models.ToolConfig{ToolWidth: 0.5, SafetyMargin: -0.01}, "safety_margin"},
		{"장애물 크기 0", wall, []models.Obstacle{{X: 1, Y: 1, Width: 0, Height: 1}}, tool, "obstacles[0]"},
		{"장애물 벽 이탈", wall, []models.Obstacle{{X: 4.5, Y: 1, Width: 1, Height: 1}}, tool, "obstacles[0]"},
		{"장애물 음수 좌표", wall, []models.Obstacle{{X: -0.1, Y: 1, Width: 1, Height: 1}}, tool, "obstacles[0]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.wall, tc.obstacles, tc.tool)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestValidateAcceptsGoodInput(t *testing.T) {
	err := Validate(
		models.Wall{Width: 5, Height: 5},
		[]models.Obstacle{{X: 2, Y: 2, Width: 0.25, Height: 0.25}},
		models.ToolConfig{ToolWidth: 0.5, Overlap: 0, SafetyMargin: 0.05},
	)
	assert.NoError(t, err)
}

func TestInflateObstaclesClampsToWall(t *testing.T) {
	wall := models.Wall{Width: 5, Height: 5}

	// 벽 모서리에 붙은 장애물은 가장자리 너머로 팽창하지 않는다
	inflated := InflateObstacles(wall, []models.Obstacle{
		{X: 0, Y: 0, Width: 1, Height: 1},
		{X: 4, Y: 4, Width: 1, Height: 1},
	}, 0.2)

	require.Len(t, inflated, 2)
	assert.Equal(t, 0.0, inflated[0].MinX)
	assert.Equal(t, 0.0, inflated[0].MinY)
	assert.InDelta(t, 1.2, inflated[0].MaxX, 1e-12)
	assert.InDelta(t, 3.8, inflated[1].MinX, 1e-12)
	assert.Equal(t, 5.0, inflated[1].MaxX)
	assert.Equal(t, 5.0, inflated[1].MaxY)
}

// 예제 A: 5x5 벽, 도구 폭 0.5, 겹침 0, 장애물 없음
// → 10개 스트립, 스트립마다 전체 높이 작업 구간 1개, 방향 교대, 웨이포인트 20개
func TestPlanOpenWall(t *testing.T) {
	p := NewCoveragePlanner(models.ToolConfig{ToolWidth: 0.5, Overlap: 0, SafetyMargin: 0.05})
	result, err := p.Plan(models.Wall{Width: 5, Height: 5}, nil)
	require.NoError(t, err)

	points := result.Points
	require.Len(t, points, 20)

	// 스트립마다 웨이포인트 2개, 중심선 x는 0.25 + 0.5i
	for i := 0; i < 10; i++ {
		x := 0.25 + 0.5*float64(i)
		assert.InDelta(t, x, points[2*i].X, 1e-12)
		assert.InDelta(t, x, points[2*i+1].X, 1e-12)

		// 방향 교대: 짝수 스트립은 0→5, 홀수 스트립은 5→0
		if i%2 == 0 {
			assert.Equal(t, 0.0, points[2*i].Y)
			assert.Equal(t, 5.0, points[2*i+1].Y)
		} else {
			assert.Equal(t, 5.0, points[2*i].Y)
			assert.Equal(t, 0.0, points[2*i+1].Y)
		}

		// 작업 구간 끝점은 도구 활성
		assert.True(t, points[2*i+1].ToolActive)
	}

	// 스트립 경계의 이동 웨이포인트는 도구 비활성
	assert.False(t, points[2].ToolActive)
}

// 예제 B: 예제 A + 장애물 {x=2, y=2, w=0.25, h=0.25}, 안전 마진 0.05
// → 중심선이 [1.95, 2.3]을 지나는 스트립만 작업 구간 2개 + 우회 레그로 분할
func TestPlanWithObstacle(t *testing.T) {
	obstacle := models.Obstacle{X: 2, Y: 2, Width: 0.25, Height: 0.25}
	p := NewCoveragePlanner(models.ToolConfig{ToolWidth: 0.5, Overlap: 0, SafetyMargin: 0.05})

	result, err := p.Plan(models.Wall{Width: 5, Height: 5}, []models.Obstacle{obstacle})
	require.NoError(t, err)

	// 팽창 장애물 x 범위 [1.95, 2.3]에 걸리는 중심선은 2.25 (스트립 4) 하나
	require.Len(t, result.Inflated, 1)
	assert.InDelta(t, 1.95, result.Inflated[0].MinX, 1e-12)
	assert.InDelta(t, 2.3, result.Inflated[0].MaxX, 1e-12)

	// 영향받은 스트립의 우회 웨이포인트 4개가 추가된다 (20 + 4)
	points := result.Points
	require.Len(t, points, 24)

	// 스트립 4 (x=2.25, 상승 방향): 작업 구간 [0,1.95], [2.3,5]
	var stripPoints []models.TrajectoryPoint
	for _, pt := range points {
		if math.Abs(pt.X-2.25) < 1e-9 || math.Abs(pt.X-2.3) < 1e-9 {
			stripPoints = append(stripPoints, pt)
		}
	}
	require.Len(t, stripPoints, 6)
	assert.InDelta(t, 1.95, stripPoints[1].Y, 1e-12)
	assert.True(t, stripPoints[1].ToolActive)

	// 우회는 도구 비활성으로 장애물 오른쪽 가장자리(x=2.3)를 돈다
	assert.False(t, stripPoints[2].ToolActive)
	assert.InDelta(t, 2.3, stripPoints[2].X, 1e-12)
	assert.False(t, stripPoints[3].ToolActive)
	assert.InDelta(t, 2.3, stripPoints[3].Y, 1e-12)
	assert.False(t, stripPoints[4].ToolActive)
	assert.InDelta(t, 2.25, stripPoints[4].X, 1e-12)

	// 나머지 스트립은 예제 A와 동일
	for i := 0; i < 4; i++ {
		x := 0.25 + 0.5*float64(i)
		assert.InDelta(t, x, points[2*i].X, 1e-12)
	}
}

// 우회는 갭을 만든 장애물만이 아니라 x 범위가 맞닿은 인접 장애물까지 피한다
func TestDetourClearsAdjacentObstacle(t *testing.T) {
	// 중심선 2.25를 막는 장애물 [2.15, 2.4] 왼쪽에
	// 같은 y 구간의 인접 장애물 [1.7, 2.18]이 맞닿아 있다
	// 왼쪽 이탈 거리(0.10)가 더 짧아 보이지만 인접 장애물에 걸리므로
	// 확장된 범위의 오른쪽 가장자리(2.4)로 돌아야 한다
	obstacles := []models.Obstacle{
		{X: 2.15, Y: 2, Width: 0.25, Height: 0.5},
		{X: 1.7, Y: 2, Width: 0.48, Height: 0.5},
	}
	p := NewCoveragePlanner(models.ToolConfig{ToolWidth: 0.5, Overlap: 0, SafetyMargin: 0})

	result, err := p.Plan(models.Wall{Width: 5, Height: 5}, obstacles)
	require.NoError(t, err)

	points := result.Points
	sawRightDetour := false
	for _, pt := range points {
		if !pt.ToolActive && math.Abs(pt.X-2.4) < 1e-9 {
			sawRightDetour = true
		}
		// 확장 전 가장자리(2.15)로 도는 웨이포인트가 있으면 인접 장애물을 관통한다
		assert.False(t, math.Abs(pt.X-2.15) < 1e-9, "인접 장애물 내부 가장자리로 우회: %+v", pt)
	}
	assert.True(t, sawRightDetour, "확장된 오른쪽 가장자리(2.4) 우회 웨이포인트 없음")

	// 모든 이동 구간의 중점도 팽창 장애물 내부를 지나면 안 된다 (경계는 허용)
	for i := 1; i < len(points); i++ {
		midX := (points[i-1].X + points[i].X) / 2
		midY := (points[i-1].Y + points[i].Y) / 2
		for _, ob := range result.Inflated {
			inside := midX > ob.MinX+1e-9 && midX < ob.MaxX-1e-9 &&
				midY > ob.MinY+1e-9 && midY < ob.MaxY-1e-9
			assert.False(t, inside, "구간 중점이 장애물 내부에 있음: (%.3f, %.3f) in %+v", midX, midY, ob)
		}
	}
}

func TestPlanDeterministic(t *testing.T) {
	wall := models.Wall{Width: 4, Height: 3}
	obstacles := []models.Obstacle{
		{X: 1, Y: 1, Width: 0.5, Height: 0.5},
		{X: 2.5, Y: 0.5, Width: 0.3, Height: 1.2},
	}
	tool := models.ToolConfig{ToolWidth: 0.2, Overlap: 0.05, SafetyMargin: 0.03}

	first, err := NewCoveragePlanner(tool).Plan(wall, obstacles)
	require.NoError(t, err)
	second, err := NewCoveragePlanner(tool).Plan(wall, obstacles)
	require.NoError(t, err)

	assert.Equal(t, first.Points, second.Points)
}

func TestPlanFullyBlockedWall(t *testing.T) {
	// 벽 전체를 덮는 장애물 → 작업 구간 없음
	p := NewCoveragePlanner(models.ToolConfig{ToolWidth: 0.5, Overlap: 0, SafetyMargin: 0})
	_, err := p.Plan(models.Wall{Width: 2, Height: 2}, []models.Obstacle{
		{X: 0, Y: 0, Width: 2, Height: 2},
	})

	var pErr *PlanningError
	require.ErrorAs(t, err, &pErr)
}

func TestPlanSkipsFullyBlockedStrip(t *testing.T) {
	// 세로로 벽 전체를 막는 장애물: 해당 스트립만 빠지고 나머지는 이어진다
	p := NewCoveragePlanner(models.ToolConfig{ToolWidth: 0.5, Overlap: 0, SafetyMargin: 0})
	result, err := p.Plan(models.Wall{Width: 3, Height: 3}, []models.Obstacle{
		{X: 1.2, Y: 0, Width: 0.6, Height: 3},
	})
	require.NoError(t, err)

	for _, pt := range result.Points {
		if pt.ToolActive {
			assert.False(t, pt.X > 1.2 && pt.X < 1.8,
				"차단 스트립에 작업 웨이포인트 존재: %+v", pt)
		}
	}
}

func TestToolActivePointsOutsideObstacles(t *testing.T) {
	wall := models.Wall{Width: 5, Height: 4}
	obstacles := []models.Obstacle{
		{X: 1, Y: 1, Width: 0.8, Height: 0.6},
		{X: 3, Y: 2, Width: 0.5, Height: 1},
		{X: 0, Y: 3.5, Width: 2, Height: 0.5},
	}
	p := NewCoveragePlanner(models.ToolConfig{ToolWidth: 0.3, Overlap: 0.05, SafetyMargin: 0.05})

	result, err := p.Plan(wall, obstacles)
	require.NoError(t, err)

	// 도구 활성 웨이포인트는 팽창 장애물 내부에 있으면 안 된다 (경계는 허용)
	for _, pt := range result.Points {
		if !pt.ToolActive {
			continue
		}
		for _, ob := range result.Inflated {
			inside := pt.X > ob.MinX+1e-9 && pt.X < ob.MaxX-1e-9 &&
				pt.Y > ob.MinY+1e-9 && pt.Y < ob.MaxY-1e-9
			assert.False(t, inside, "도구 활성 웨이포인트가 장애물 내부에 있음: %+v in %+v", pt, ob)
		}
	}
}

func TestNoDuplicateConsecutivePositions(t *testing.T) {
	p := NewCoveragePlanner(models.ToolConfig{ToolWidth: 0.5, Overlap: 0.1, SafetyMargin: 0.05})
	result, err := p.Plan(models.Wall{Width: 5, Height: 5}, []models.Obstacle{
		{X: 2, Y: 2, Width: 0.5, Height: 0.5},
	})
	require.NoError(t, err)

	for i := 1; i < len(result.Points); i++ {
		prev, cur := result.Points[i-1], result.Points[i]
		same := math.Abs(prev.X-cur.X) < 1e-9 && math.Abs(prev.Y-cur.Y) < 1e-9
		assert.False(t, same, "연속 중복 위치: index %d", i)
	}
}

func TestHeadings(t *testing.T) {
	p := NewCoveragePlanner(models.ToolConfig{ToolWidth: 0.5, Overlap: 0, SafetyMargin: 0})
	result, err := p.Plan(models.Wall{Width: 1, Height: 2}, nil)
	require.NoError(t, err)

	points := result.Points
	require.Len(t, points, 4)

	// 상승 스트립은 +y 방향 (π/2)
	assert.InDelta(t, math.Pi/2, points[0].Heading, 1e-12)
	// 스트립 이동은 +x 방향 (0)
	assert.InDelta(t, 0, points[1].Heading, 1e-12)
	// 하강 스트립은 -y 방향 (-π/2)
	assert.InDelta(t, -math.Pi/2, points[2].Heading, 1e-12)
	// 마지막 웨이포인트는 직전 heading 반복
	assert.Equal(t, points[2].Heading, points[3].Heading)
}

// 커버리지 완전성: 도구 활성 레그가 쓸고 간 사각형들이
// (팽창 장애물 근처를 제외한) 벽 전체를 도구 폭 경계 허용치 안에서 덮는다
func TestCoverageCompleteness(t *testing.T) {
	wall := models.Wall{Width: 4, Height: 3}
	obstacles := []models.Obstacle{{X: 1.5, Y: 1, Width: 0.6, Height: 0.8}}
	tool := models.ToolConfig{ToolWidth: 0.3, Overlap: 0.05, SafetyMargin: 0.05}

	result, err := NewCoveragePlanner(tool).Plan(wall, obstacles)
	require.NoError(t, err)

	// 도구 활성 세로 작업 구간 복원 (도착 웨이포인트가 도구 상태를 결정)
	type workSeg struct{ x, y1, y2 float64 }
	var segs []workSeg
	points := result.Points
	for i := 1; i < len(points); i++ {
		if points[i].ToolActive && math.Abs(points[i].X-points[i-1].X) < 1e-9 {
			segs = append(segs, workSeg{
				x:  points[i].X,
				y1: math.Min(points[i-1].Y, points[i].Y),
				y2: math.Max(points[i-1].Y, points[i].Y),
			})
		}
	}
	require.NotEmpty(t, segs)

	tol := tool.ToolWidth
	step := tool.ToolWidth / 2
	for sx := step; sx < wall.Width; sx += step {
		for sy := step; sy < wall.Height; sy += step {
			// 팽창 장애물 허용치 이내의 샘플은 제외
			nearObstacle := false
			for _, ob := range result.Inflated {
				if sx > ob.MinX-tol && sx < ob.MaxX+tol && sy > ob.MinY-tol && sy < ob.MaxY+tol {
					nearObstacle = true
					break
				}
			}
			if nearObstacle {
				continue
			}

			covered := false
			for _, seg := range segs {
				if math.Abs(sx-seg.x) <= tool.ToolWidth && sy >= seg.y1-tol && sy <= seg.y2+tol {
					covered = true
					break
				}
			}
			assert.True(t, covered, "덮이지 않은 지점: (%.2f, %.2f)", sx, sy)
		}
	}
}

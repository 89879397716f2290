package models

// ========================================
// 벽면 / 장애물 / 도구 설정
// ========================================

// 장애물 종류
const (
	ObstacleKindWindow   = "window"   // 창문
	ObstacleKindDoor     = "door"     // 문
	ObstacleKindObstacle = "obstacle" // 기타 장애물
)

// Wall - 작업 대상 벽면 (미터 단위, 커버리지 영역은 [0,Width]×[0,Height])
type Wall struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Obstacle - 벽면 위의 사각형 금지 영역
type Obstacle struct {
	ID     string  `json:"id,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Kind   string  `json:"kind,omitempty"` // "window" | "door" | "obstacle"
}

// ToolConfig - 작업 도구 파라미터
type ToolConfig struct {
	ToolWidth    float64 `json:"tool_width"`    // 도구 폭 (> 0)
	Overlap      float64 `json:"overlap"`       // 스트립 겹침 (0 <= overlap < tool_width)
	SafetyMargin float64 `json:"safety_margin"` // 장애물 안전 마진 (>= 0)
}

// 기본 도구 설정 (요청에서 tool_width 생략 시 사용)
const (
	DefaultToolWidth    = 0.1
	DefaultOverlap      = 0.02
	DefaultSafetyMargin = 0.05
)

// DefaultToolConfig - 기본 도구 설정 반환
func DefaultToolConfig() ToolConfig {
	return ToolConfig{
		ToolWidth:    DefaultToolWidth,
		Overlap:      DefaultOverlap,
		SafetyMargin: DefaultSafetyMargin,
	}
}

// EffectiveWidth - 유효 도구 폭 (스트립 간격)
func (t ToolConfig) EffectiveWidth() float64 {
	return t.ToolWidth - t.Overlap
}

// InflatedObstacle - 안전 마진만큼 팽창된 장애물 (벽 경계로 클램프됨)
// 계획 호출마다 다시 계산되는 파생 값
type InflatedObstacle struct {
	Source Obstacle `json:"source"`
	MinX   float64  `json:"min_x"`
	MinY   float64  `json:"min_y"`
	MaxX   float64  `json:"max_x"`
	MaxY   float64  `json:"max_y"`
}

// ContainsX - 스트립 중심선 x가 장애물 x 범위에 포함되는지 (폐구간: 경계 접촉도 차단)
func (o InflatedObstacle) ContainsX(x float64) bool {
	return o.MinX <= x && x <= o.MaxX
}

// Area - 팽창 장애물 면적
func (o InflatedObstacle) Area() float64 {
	return (o.MaxX - o.MinX) * (o.MaxY - o.MinY)
}

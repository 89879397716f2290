package models

import "time"

// ========================================
// 실행 세션 / 로봇 액션
// ========================================

// 실행 세션 상태
const (
	SessionStatusRunning   = "RUNNING"
	SessionStatusCompleted = "COMPLETED"
	SessionStatusFailed    = "FAILED"
)

// 로봇 액션 타입
const (
	ActionTypeMove           = "MOVE"
	ActionTypeStop           = "STOP"
	ActionTypeActivateTool   = "ACTIVATE_TOOL"
	ActionTypeDeactivateTool = "DEACTIVATE_TOOL"
)

// 로봇 액션 상태
const (
	ActionStatusPending   = "PENDING"
	ActionStatusCompleted = "COMPLETED"
	ActionStatusFailed    = "FAILED"
)

// ExecutionSession - 저장된 경로의 1회 실행 (완료/실패 시 종료 상태)
type ExecutionSession struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	TrajectoryID uint       `gorm:"index" json:"trajectory_id"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// RobotAction - 실행 중 순차 기록되는 로봇 액션 (append-only)
// Timestamp는 누적 거리/속도 적분으로 계산한 가상 실행 시각
type RobotAction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SessionID    string    `gorm:"index;size:36" json:"session_id"`
	TrajectoryID uint      `json:"trajectory_id"`
	ActionType   string    `gorm:"index" json:"action_type"`
	Params       string    `gorm:"type:text" json:"params"` // 액션 파라미터 JSON
	Timestamp    time.Time `json:"timestamp"`
	Status       string    `json:"status"`
}

// MoveParams - MOVE 액션 파라미터
type MoveParams struct {
	FromX    float64 `json:"from_x"`
	FromY    float64 `json:"from_y"`
	ToX      float64 `json:"to_x"`
	ToY      float64 `json:"to_y"`
	Distance float64 `json:"distance"` // 미터
	Speed    float64 `json:"speed"`    // m/s
	Duration float64 `json:"duration"` // 초
}

// ToolParams - ACTIVATE_TOOL / DEACTIVATE_TOOL 액션 파라미터
type ToolParams struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	ToolActive bool    `json:"tool_active"`
}

// ExecutionResult - 실행 결과 요약
type ExecutionResult struct {
	SessionID      string `json:"session_id"`
	Status         string `json:"status"`
	TrajectoryID   uint   `json:"trajectory_id"`
	PointsExecuted int    `json:"points_executed"`
}

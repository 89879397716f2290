package models

import "time"

// ========================================
// 메시지 큐 / 실시간 피드
// ========================================

// 메시지 큐 타입
const (
	MessageTypeCommand      = "COMMAND"       // 외부 명령
	MessageTypeStatusUpdate = "STATUS_UPDATE" // 실행 상태 변경 알림
	MessageTypeError        = "ERROR"         // 실행 중 오류
)

// Message - 메시지 큐 엔트리 (append-only 로그, 소비는 외부 담당)
// 한 세션 안에서의 순서는 auto-increment ID로 보존된다
type Message struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Type        string     `gorm:"index" json:"type"`
	Payload     string     `gorm:"type:text" json:"payload"` // JSON
	Processed   bool       `gorm:"index" json:"processed"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// ========================================
// WebSocket 실시간 피드 메시지 타입
// ========================================
const (
	WSTypeExecutionStatus = "execution_status" // 실행 세션 상태 변경
	WSTypeSystemInfo      = "system_info"      // 시스템 정보
)

// WebSocketMessage - 웹 클라이언트 실시간 피드 공통 형식
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"` // Unix timestamp (ms)
}

// ExecutionStatusData - 실행 상태 브로드캐스트 데이터
type ExecutionStatusData struct {
	SessionID    string `json:"session_id"`
	TrajectoryID uint   `json:"trajectory_id"`
	Status       string `json:"status"`
	Event        string `json:"event"` // "execution_started" | "execution_completed" | "execution_failed"
}

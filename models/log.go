package models

import "time"

// SystemLog - 요청/시스템 감사 로그
type SystemLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Level     string    `json:"level"` // "INFO" | "WARN" | "ERROR"
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Duration  float64   `json:"duration"` // 처리 시간 (초)
}

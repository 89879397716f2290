package services

import (
	"time"

	"wallbot-backend/models"

	"gorm.io/gorm"
)

// Broker - 순서 보존 append 로그 추상화
// 한 세션의 메시지 순서는 추가된 순서대로 보존되어야 한다 (시작이 완료보다 먼저)
type Broker interface {
	Append(msgType, payload string) (uint, error)
}

// MessageBroker - 메시지 큐 테이블 기반 Broker 구현
// 소비는 외부 담당이므로 여기서는 추가/조회/처리 마킹만 제공한다
type MessageBroker struct {
	db *gorm.DB
}

// NewMessageBroker - MessageBroker 생성
func NewMessageBroker(db *gorm.DB) *MessageBroker {
	return &MessageBroker{db: db}
}

// Append - 메시지 1건 추가
func (b *MessageBroker) Append(msgType, payload string) (uint, error) {
	msg := models.Message{
		Type:    msgType,
		Payload: payload,
	}
	if err := b.db.Create(&msg).Error; err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// Messages - 메시지 조회 (타입 필터 옵션, 추가 순서대로)
func (b *MessageBroker) Messages(msgType string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	query := b.db.Order("id ASC").Limit(limit)
	if msgType != "" {
		query = query.Where("type = ?", msgType)
	}
	var messages []models.Message
	err := query.Find(&messages).Error
	return messages, err
}

// ProcessPending - 미처리 메시지 전체를 처리 완료로 마킹하고 건수 반환
func (b *MessageBroker) ProcessPending() (int, error) {
	now := time.Now()
	result := b.db.Model(&models.Message{}).
		Where("processed = ?", false).
		Updates(map[string]interface{}{
			"processed":    true,
			"processed_at": &now,
		})
	return int(result.RowsAffected), result.Error
}

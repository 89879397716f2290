package handlers

import (
	"wallbot-backend/services"

	"gorm.io/gorm"
)

// 핸들러가 사용하는 서비스 인스턴스
var (
	trajectoryStore *services.TrajectoryStore
	sessionStore    *services.SessionStore
	actionLog       *services.DBActionLog
	messageBroker   *services.MessageBroker
	executor        *services.TrajectoryExecutor
)

// InitHandlers - 핸들러 의존성 초기화
func InitHandlers(db *gorm.DB) {
	trajectoryStore = services.NewTrajectoryStore(db)
	sessionStore = services.NewSessionStore(db)
	actionLog = services.NewActionLog(db)
	messageBroker = services.NewMessageBroker(db)
	executor = services.NewTrajectoryExecutor(db, actionLog, messageBroker)
	executor.SetNotifier(Manager.BroadcastMessage)
}

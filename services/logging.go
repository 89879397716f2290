package services

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"wallbot-backend/models"
)

// 로깅 버퍼 (비동기 일괄 처리)
type LogBuffer struct {
	logs      []models.SystemLog
	mu        sync.Mutex
	flushSize int           // 일괄 저장 크기
	flushTime time.Duration // 자동 플러시 시간
	stopChan  chan bool
}

var logBuffer *LogBuffer

// InitLogging - 요청/시스템 로깅 초기화
func InitLogging(flushSize int, flushInterval time.Duration) {
	logBuffer = &LogBuffer{
		logs:      make([]models.SystemLog, 0, flushSize*2),
		flushSize: flushSize,
		flushTime: flushInterval,
		stopChan:  make(chan bool),
	}

	// 자동 플러시 고루틴 시작
	go logBuffer.autoFlush()

	log.Printf("✅ 로깅 시스템 초기화 완료 (flushSize: %d, flushInterval: %v)", flushSize, flushInterval)
}

// autoFlush - 주기적 로그 저장
func (lb *LogBuffer) autoFlush() {
	ticker := time.NewTicker(lb.flushTime)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lb.Flush()
		case <-lb.stopChan:
			lb.Flush() // 종료 시 남은 로그 저장
			return
		}
	}
}

// AddLog - 로그 버퍼에 추가 (비동기)
func AddLog(entry models.SystemLog) {
	if logBuffer == nil {
		log.Println("⚠️ 로깅 시스템이 초기화되지 않음")
		return
	}

	logBuffer.mu.Lock()
	logBuffer.logs = append(logBuffer.logs, entry)
	size := len(logBuffer.logs)
	logBuffer.mu.Unlock()

	// 버퍼 크기가 차면 즉시 플러시
	if size >= logBuffer.flushSize {
		go logBuffer.Flush()
	}
}

// Flush - 버퍼의 모든 로그를 DB에 저장
func (lb *LogBuffer) Flush() {
	lb.mu.Lock()
	if len(lb.logs) == 0 {
		lb.mu.Unlock()
		return
	}

	logsToSave := make([]models.SystemLog, len(lb.logs))
	copy(logsToSave, lb.logs)
	lb.logs = lb.logs[:0]
	lb.mu.Unlock()

	if db != nil {
		err := db.CreateInBatches(logsToSave, 100).Error
		if err != nil {
			log.Printf("❌ 로그 저장 실패: %v", err)
		}
	}
}

// LogRequest - HTTP 요청 감사 로그
func LogRequest(level, message, requestID string, duration float64) {
	AddLog(models.SystemLog{
		CreatedAt: time.Now(),
		Level:     level,
		Message:   message,
		RequestID: requestID,
		Duration:  duration,
	})
}

// GetRecentLogs - 최근 시스템 로그 조회
func GetRecentLogs(limit int) ([]models.SystemLog, error) {
	if limit <= 0 {
		limit = 10
	}
	var logs []models.SystemLog
	err := db.Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// GetRequestStats - 요청 통계 (총 건수, 평균 처리 시간)
func GetRequestStats() (int64, float64, error) {
	var total int64
	if err := db.Model(&models.SystemLog{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}

	var avg sql.NullFloat64
	err := db.Model(&models.SystemLog{}).
		Select("AVG(duration)").
		Where("duration > 0").
		Scan(&avg).Error
	if err != nil {
		return total, 0, err
	}
	if !avg.Valid {
		return total, 0, nil
	}
	return total, avg.Float64, nil
}

// StopLogging - 로깅 시스템 종료
func StopLogging() {
	if logBuffer != nil {
		logBuffer.stopChan <- true
		log.Println("🛑 로깅 시스템 종료")
	}
}

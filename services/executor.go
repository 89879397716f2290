package services

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"wallbot-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 웨이포인트에 속도가 없을 때 사용하는 기본 이동 속도 (m/s)
const DefaultSpeed = 0.1

// ExecutionError - 재생 중 내부 실패
// 세션은 FAILED로 종료되고 이미 기록된 액션은 유효한 부분 기록으로 남는다
type ExecutionError struct {
	SessionID  string
	PointIndex int
	Err        error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("실행 실패 (세션 %s, 포인트 %d): %v", e.SessionID, e.PointIndex, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// TrajectoryExecutor - 저장된 경로를 시간 순 로봇 액션으로 재생하는 시뮬레이터
// 액션 타임스탬프는 구간 거리/속도 적분으로 계산한 가상 시각이며
// 한 세션의 액션 기록은 엄격히 순차적이다 (내부 병렬 처리 없음)
type TrajectoryExecutor struct {
	db      *gorm.DB
	store   *TrajectoryStore
	actions ActionLog
	broker  Broker
	notify  func(models.WebSocketMessage)
}

// NewTrajectoryExecutor - TrajectoryExecutor 생성
func NewTrajectoryExecutor(db *gorm.DB, actions ActionLog, broker Broker) *TrajectoryExecutor {
	return &TrajectoryExecutor{
		db:      db,
		store:   NewTrajectoryStore(db),
		actions: actions,
		broker:  broker,
	}
}

// SetNotifier - 실행 상태 실시간 브로드캐스트 함수 설정 (옵션)
func (e *TrajectoryExecutor) SetNotifier(fn func(models.WebSocketMessage)) {
	e.notify = fn
}

// Execute - 경로 ID로 실행 세션을 만들고 전체 재생
// 경로가 없으면 NotFoundError, 재생 중 실패하면 ExecutionError 반환
// 취소/타임아웃은 지원하지 않는다: 세션은 COMPLETED 또는 FAILED로만 끝난다
func (e *TrajectoryExecutor) Execute(trajectoryID uint) (*models.ExecutionResult, error) {
	t, err := e.store.Get(trajectoryID)
	if err != nil {
		return nil, err
	}
	points, err := t.Points()
	if err != nil {
		return nil, fmt.Errorf("경로 데이터 역직렬화 실패: %v", err)
	}

	session := models.ExecutionSession{
		ID:           uuid.NewString(),
		TrajectoryID: trajectoryID,
		Status:       models.SessionStatusRunning,
		StartedAt:    time.Now(),
	}
	if err := e.db.Create(&session).Error; err != nil {
		return nil, err
	}

	log.Printf("🤖 경로 실행 시작: trajectory=%d session=%s points=%d", trajectoryID, session.ID, len(points))

	// 세션 시작 알림 (시작 메시지는 항상 완료 메시지보다 먼저 기록된다)
	if err := e.publishStatus(&session, "execution_started"); err != nil {
		return nil, e.fail(&session, 0, err)
	}

	virtual := session.StartedAt
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]

		dx, dy := cur.X-prev.X, cur.Y-prev.Y
		distance := math.Hypot(dx, dy)
		speed := cur.Speed
		if speed <= 0 {
			speed = DefaultSpeed
		}
		duration := distance / speed
		virtual = virtual.Add(time.Duration(duration * float64(time.Second)))

		moveParams, _ := json.Marshal(models.MoveParams{
			FromX:    prev.X,
			FromY:    prev.Y,
			ToX:      cur.X,
			ToY:      cur.Y,
			Distance: distance,
			Speed:    speed,
			Duration: duration,
		})
		move := models.RobotAction{
			SessionID:    session.ID,
			TrajectoryID: trajectoryID,
			ActionType:   models.ActionTypeMove,
			Params:       string(moveParams),
			Timestamp:    virtual,
			Status:       models.ActionStatusPending,
		}
		if err := e.actions.Append(&move); err != nil {
			return nil, e.fail(&session, i, err)
		}
		if err := e.actions.Complete(move.ID); err != nil {
			return nil, e.fail(&session, i, err)
		}

		// 도구 상태 전환 시 전환 지점 타임스탬프로 추가 액션 기록
		if cur.ToolActive != prev.ToolActive {
			actionType := models.ActionTypeDeactivateTool
			if cur.ToolActive {
				actionType = models.ActionTypeActivateTool
			}
			toolParams, _ := json.Marshal(models.ToolParams{
				X:          cur.X,
				Y:          cur.Y,
				ToolActive: cur.ToolActive,
			})
			tool := models.RobotAction{
				SessionID:    session.ID,
				TrajectoryID: trajectoryID,
				ActionType:   actionType,
				Params:       string(toolParams),
				Timestamp:    virtual,
				Status:       models.ActionStatusPending,
			}
			if err := e.actions.Append(&tool); err != nil {
				return nil, e.fail(&session, i, err)
			}
			if err := e.actions.Complete(tool.ID); err != nil {
				return nil, e.fail(&session, i, err)
			}
		}
	}

	// 마지막 포인트 도달: 세션 완료 처리
	if err := e.actions.CompleteSession(session.ID); err != nil {
		return nil, e.fail(&session, len(points), err)
	}
	now := time.Now()
	session.Status = models.SessionStatusCompleted
	session.CompletedAt = &now
	if err := e.db.Save(&session).Error; err != nil {
		return nil, e.fail(&session, len(points), err)
	}
	if err := e.publishStatus(&session, "execution_completed"); err != nil {
		return nil, &ExecutionError{SessionID: session.ID, PointIndex: len(points), Err: err}
	}

	log.Printf("✅ 경로 실행 완료: session=%s points=%d", session.ID, len(points))

	return &models.ExecutionResult{
		SessionID:      session.ID,
		Status:         session.Status,
		TrajectoryID:   trajectoryID,
		PointsExecuted: len(points),
	}, nil
}

// fail - 세션을 FAILED로 전환하고 이후 액션 기록 중단
// 이미 기록된 액션은 그대로 남긴다
func (e *TrajectoryExecutor) fail(session *models.ExecutionSession, pointIndex int, cause error) error {
	now := time.Now()
	session.Status = models.SessionStatusFailed
	session.CompletedAt = &now
	if err := e.db.Save(session).Error; err != nil {
		log.Printf("❌ 세션 상태 저장 실패: %v", err)
	}

	// 오류 메시지는 최선 노력으로 기록한다
	payload, _ := json.Marshal(map[string]interface{}{
		"session_id":    session.ID,
		"trajectory_id": session.TrajectoryID,
		"point_index":   pointIndex,
		"error":         cause.Error(),
	})
	if _, err := e.broker.Append(models.MessageTypeError, string(payload)); err != nil {
		log.Printf("⚠️ 오류 메시지 기록 실패: %v", err)
	}
	e.broadcast(session, "execution_failed")

	log.Printf("❌ 경로 실행 실패: session=%s point=%d err=%v", session.ID, pointIndex, cause)

	return &ExecutionError{SessionID: session.ID, PointIndex: pointIndex, Err: cause}
}

// publishStatus - 상태 변경 메시지 기록 + 실시간 브로드캐스트
func (e *TrajectoryExecutor) publishStatus(session *models.ExecutionSession, event string) error {
	payload, err := json.Marshal(models.ExecutionStatusData{
		SessionID:    session.ID,
		TrajectoryID: session.TrajectoryID,
		Status:       session.Status,
		Event:        event,
	})
	if err != nil {
		return err
	}
	if _, err := e.broker.Append(models.MessageTypeStatusUpdate, string(payload)); err != nil {
		return err
	}
	e.broadcast(session, event)
	return nil
}

// broadcast - WebSocket 실시간 피드로 실행 상태 전송
func (e *TrajectoryExecutor) broadcast(session *models.ExecutionSession, event string) {
	if e.notify == nil {
		return
	}
	e.notify(models.WebSocketMessage{
		Type: models.WSTypeExecutionStatus,
		Data: models.ExecutionStatusData{
			SessionID:    session.ID,
			TrajectoryID: session.TrajectoryID,
			Status:       session.Status,
			Event:        event,
		},
		Timestamp: time.Now().UnixMilli(),
	})
}

package services

import (
	"errors"
	"fmt"

	"wallbot-backend/models"

	"gorm.io/gorm"
)

// NotFoundError - 알 수 없는 식별자로 조회/삭제/실행 시도
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s을(를) 찾을 수 없습니다: %s", e.Resource, e.ID)
}

// TrajectoryStore - 경로 저장소 (gorm)
type TrajectoryStore struct {
	db *gorm.DB
}

// NewTrajectoryStore - TrajectoryStore 생성
func NewTrajectoryStore(db *gorm.DB) *TrajectoryStore {
	return &TrajectoryStore{db: db}
}

// Save - 생성된 경로를 벽/장애물 스냅샷과 함께 저장하고 ID 반환
func (s *TrajectoryStore) Save(wall models.Wall, obstacles []models.Obstacle, points []models.TrajectoryPoint, planningTime float64) (uint, error) {
	t := models.Trajectory{
		WallWidth:    wall.Width,
		WallHeight:   wall.Height,
		PlanningTime: planningTime,
	}
	if err := t.SetObstacles(obstacles); err != nil {
		return 0, err
	}
	if err := t.SetPoints(points); err != nil {
		return 0, err
	}
	if err := s.db.Create(&t).Error; err != nil {
		return 0, err
	}
	return t.ID, nil
}

// Get - ID로 경로 조회
func (s *TrajectoryStore) Get(id uint) (*models.Trajectory, error) {
	var t models.Trajectory
	err := s.db.First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "경로", ID: fmt.Sprint(id)}
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List - 최신순 경로 목록 조회 (메타데이터 포함)
func (s *TrajectoryStore) List(limit, offset int) ([]models.Trajectory, error) {
	if limit <= 0 {
		limit = 10
	}
	var trajectories []models.Trajectory
	err := s.db.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&trajectories).Error
	return trajectories, err
}

// Delete - ID로 경로 삭제
func (s *TrajectoryStore) Delete(id uint) error {
	result := s.db.Delete(&models.Trajectory{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "경로", ID: fmt.Sprint(id)}
	}
	return nil
}

// Count - 저장된 경로 수
func (s *TrajectoryStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Trajectory{}).Count(&count).Error
	return count, err
}

// ========================================
// 로봇 액션 로그
// ========================================

// ActionLog - 로봇 액션 기록 인터페이스 (실행 시뮬레이터가 사용)
// 테스트에서 실패 주입을 위해 인터페이스로 분리한다
type ActionLog interface {
	Append(action *models.RobotAction) error
	Complete(actionID uint) error
	CompleteSession(sessionID string) error
}

// DBActionLog - gorm 기반 ActionLog 구현
type DBActionLog struct {
	db *gorm.DB
}

// NewActionLog - DBActionLog 생성
func NewActionLog(db *gorm.DB) *DBActionLog {
	return &DBActionLog{db: db}
}

// Append - 액션 1건 추가 (PENDING 상태)
func (l *DBActionLog) Append(action *models.RobotAction) error {
	return l.db.Create(action).Error
}

// Complete - 액션 1건 완료 처리
func (l *DBActionLog) Complete(actionID uint) error {
	return l.db.Model(&models.RobotAction{}).
		Where("id = ?", actionID).
		Update("status", models.ActionStatusCompleted).Error
}

// CompleteSession - 세션의 남은 액션 전체 완료 처리
func (l *DBActionLog) CompleteSession(sessionID string) error {
	return l.db.Model(&models.RobotAction{}).
		Where("session_id = ? AND status = ?", sessionID, models.ActionStatusPending).
		Update("status", models.ActionStatusCompleted).Error
}

// SessionActions - 세션의 액션 목록 조회 (기록 순서대로)
func (l *DBActionLog) SessionActions(sessionID string) ([]models.RobotAction, error) {
	var actions []models.RobotAction
	err := l.db.Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&actions).Error
	return actions, err
}

// ========================================
// 실행 세션 조회
// ========================================

// SessionStore - 실행 세션 저장소
type SessionStore struct {
	db *gorm.DB
}

// NewSessionStore - SessionStore 생성
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Get - 세션 ID로 조회
func (s *SessionStore) Get(id string) (*models.ExecutionSession, error) {
	var session models.ExecutionSession
	err := s.db.First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "세션", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

package planner

import "fmt"

// ValidationError - 벽/장애물/도구 입력 검증 실패 (문제 필드 명시)
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("입력 검증 실패 (%s): %s", e.Field, e.Message)
}

// PlanningError - 유효한 입력이지만 계획 불가능 (예: 전체 벽면 차단)
type PlanningError struct {
	Message string
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("경로 계획 실패: %s", e.Message)
}

package planner

import (
	"sort"

	"wallbot-backend/models"
)

// 부동소수점 비교/퇴화 구간 허용 오차
const epsilon = 1e-9

// Interval - 스트립 위의 y 구간 [Start, End]
type Interval struct {
	Start float64
	End   float64
}

// Length - 구간 길이
func (iv Interval) Length() float64 {
	return iv.End - iv.Start
}

// WorkIntervals - 스트립 중심선의 작업 가능 y 구간 목록 (y 오름차순)
// 중심선 x가 x 범위에 포함되는 팽창 장애물을 수집해서 병합한 뒤
// 전체 구간 [0, wallHeight]에서 차감한다
// 구간 포함 판정은 폐구간: 장애물 경계가 중심선에 정확히 닿아도 차단으로 본다
// 스트립 전체가 막히면 빈 목록을 반환한다
func WorkIntervals(strip Strip, wallHeight float64, obstacles []models.InflatedObstacle) []Interval {
	var blocked []Interval
	for _, ob := range obstacles {
		if ob.ContainsX(strip.X) {
			blocked = append(blocked, Interval{Start: ob.MinY, End: ob.MaxY})
		}
	}
	return subtractIntervals(wallHeight, mergeIntervals(blocked))
}

// mergeIntervals - 겹치거나 맞닿은 구간 병합 (시작 y 기준 정렬)
func mergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].Start == intervals[j].Start {
			return intervals[i].End < intervals[j].End
		}
		return intervals[i].Start < intervals[j].Start
	})

	merged := []Interval{intervals[0]}
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End+epsilon {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// subtractIntervals - [0, height]에서 차단 구간을 제거한 나머지 구간 계산
// 퇴화 구간(길이 ~0)은 결과에서 제외한다
func subtractIntervals(height float64, blocked []Interval) []Interval {
	var work []Interval
	cursor := 0.0

	for _, b := range blocked {
		if b.Start > cursor+epsilon {
			end := b.Start
			if end > height {
				end = height
			}
			work = append(work, Interval{Start: cursor, End: end})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}

	if cursor < height-epsilon {
		work = append(work, Interval{Start: cursor, End: height})
	}
	return work
}

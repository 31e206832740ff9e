package service

import (
	"sync"

	"cooking-assistant-be/internal/dto"
	"cooking-assistant-be/pkg/events"
)

type IStatsService interface {
	Record(event events.ActivityEvent)
	Snapshot() *dto.StatsResponse
}

type statsService struct {
	mu    sync.RWMutex
	stats dto.StatsResponse
}

func NewStatsService() IStatsService {
	return &statsService{
		stats: dto.StatsResponse{ByType: map[string]int64{}},
	}
}

func (s *statsService) Record(event events.ActivityEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Total++
	s.stats.ByType[event.Type]++
	if s.stats.LastActivityAt == nil || event.OccurredAt.After(*s.stats.LastActivityAt) {
		at := event.OccurredAt
		s.stats.LastActivityAt = &at
	}
}

func (s *statsService) Snapshot() *dto.StatsResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byType := make(map[string]int64, len(s.stats.ByType))
	for k, v := range s.stats.ByType {
		byType[k] = v
	}
	out := s.stats
	out.ByType = byType
	return &out
}

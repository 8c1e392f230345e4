package service

import (
	"github.com/okian/maturity/internal/adapters/repository"
)

// GetStats returns service statistics for monitoring and refreshes gauges.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":   s.started,
		"store":     repository.BackendName(s.store),
		"suggester": s.suggester.Provider(),
	}
	if !s.started {
		return stats
	}
	stats["dimensions"] = s.framework.Len()
	stats["elements"] = s.framework.ElementCount()
	stats["assessments"] = s.recorder.Len()
	if latest, ok := s.recorder.Latest(); ok {
		stats["lastOverallScore"] = latest.OverallScore
		stats["lastAssessmentDate"] = latest.Date
	}
	s.refreshGauges()
	return stats
}

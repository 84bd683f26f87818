package system_healthcheck

import (
	"fmt"

	"huddle/internal/storage"
	cache_utils "huddle/internal/util/cache"
)

type HealthcheckService struct{}

// IsAvailable probes the dependencies a request cannot be served
// without.
func (s *HealthcheckService) IsAvailable() error {
	if err := storage.GetDb().Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	if err := s.testCacheConnection(); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}

func (s *HealthcheckService) testCacheConnection() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache connection test panicked: %v", r)
		}
	}()

	cache_utils.TestCacheConnection()
	return nil
}

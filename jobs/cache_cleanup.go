package jobs

import (
	"context"
	"time"

	"github.com/fenilmodi00/ipo-dashboard/services"
	"github.com/sirupsen/logrus"
)

type CacheCleanupJob struct {
	CacheService *services.CacheService
	Interval     time.Duration
}

func NewCacheCleanupJob(cacheService *services.CacheService, interval time.Duration) *CacheCleanupJob {
	return &CacheCleanupJob{CacheService: cacheService, Interval: interval}
}

// Start runs the job on its own ticker until ctx is cancelled.
func (j *CacheCleanupJob) Start(ctx context.Context) {
	logrus.Infof("Starting Cache Cleanup Job (runs every %v)...", j.Interval)
	ticker := time.NewTicker(j.Interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logrus.Info("Cache Cleanup Job stopped")
				return
			case <-ticker.C:
				j.Run()
			}
		}
	}()
}

// Run removes expired entries once and returns how many were dropped.
func (j *CacheCleanupJob) Run() int {
	start := time.Now()
	removed := j.CacheService.CleanupExpired()

	logrus.WithFields(logrus.Fields{
		"component": "CacheCleanupJob",
		"removed":   removed,
		"remaining": j.CacheService.Size(),
		"duration":  time.Since(start),
	}).Info("Cache Cleanup Job completed")

	return removed
}

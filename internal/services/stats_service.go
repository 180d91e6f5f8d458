package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tactical-server/internal/errs"
	"tactical-server/internal/models"
	"tactical-server/internal/repositories"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	statsLatestKey = "tactical:stats:latest"
	statsCacheTTL  = 5 * time.Minute
)

type StatsService struct {
	db            *gorm.DB
	redisClient   *redis.Client
	statsRepo     *repositories.StatsRepository
	agentRepo     *repositories.AgentRepository
	operationRepo *repositories.OperationRepository
	componentRepo *repositories.ComponentRepository
	activityRepo  *repositories.ActivityRepository
}

func NewStatsService(db *gorm.DB, redisClient *redis.Client) *StatsService {
	return &StatsService{
		db:            db,
		redisClient:   redisClient,
		statsRepo:     repositories.NewStatsRepository(db),
		agentRepo:     repositories.NewAgentRepository(db),
		operationRepo: repositories.NewOperationRepository(db),
		componentRepo: repositories.NewComponentRepository(db),
		activityRepo:  repositories.NewActivityRepository(db),
	}
}

// Snapshot computes the current fleet counts inside a single transaction so
// every figure reflects the same point in time, then appends the row.
// Snapshots are append-only; history is kept for trend views.
func (s *StatsService) Snapshot(ctx context.Context) (*models.SystemStats, error) {
	stats := &models.SystemStats{Date: time.Now().UTC()}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		counts := []struct {
			dst   *int
			count func() (int64, error)
		}{
			{&stats.TotalAgents, func() (int64, error) { return s.agentRepo.CountAll(tx) }},
			{&stats.ActiveAgents, func() (int64, error) { return s.agentRepo.CountByStatus(tx, models.AgentActive) }},
			{&stats.CompromisedAgents, func() (int64, error) { return s.agentRepo.CountByStatus(tx, models.AgentCompromised) }},
			{&stats.TrainingAgents, func() (int64, error) { return s.agentRepo.CountByStatus(tx, models.AgentTraining) }},
			{&stats.TotalOperations, func() (int64, error) { return s.operationRepo.CountAll(tx) }},
			{&stats.ActiveOperations, func() (int64, error) { return s.operationRepo.CountByStatus(tx, models.OpActive) }},
			{&stats.CompletedOperations, func() (int64, error) { return s.operationRepo.CountByStatus(tx, models.OpCompleted) }},
			{&stats.TotalSystems, func() (int64, error) { return s.componentRepo.CountAll(tx) }},
			{&stats.SystemsOnline, func() (int64, error) { return s.componentRepo.CountByStatus(tx, models.SystemOnline) }},
			{&stats.Warnings, func() (int64, error) { return s.componentRepo.CountByStatus(tx, models.SystemWarning) }},
		}
		for _, c := range counts {
			v, err := c.count()
			if err != nil {
				return err
			}
			*c.dst = int(v)
		}

		// AVG over zero components is coalesced to 0 in the repository.
		avgUptime, err := s.componentRepo.AverageUptime(tx)
		if err != nil {
			return err
		}
		stats.AvgUptime = avgUptime

		completed, err := s.activityRepo.CountByType(tx, models.ActivityMissionComplete)
		if err != nil {
			return err
		}
		failed, err := s.activityRepo.CountByType(tx, models.ActivityMissionFailed)
		if err != nil {
			return err
		}
		if total := completed + failed; total > 0 {
			stats.SuccessRate = float64(completed) / float64(total) * 100
		}

		return s.statsRepo.Create(tx, stats)
	})
	if err != nil {
		return nil, errs.Dependency("snapshot stats", err)
	}

	s.cacheLatest(ctx, stats)
	return stats, nil
}

// Latest serves the cached snapshot when one is present, otherwise falls
// back to the newest row.
func (s *StatsService) Latest(ctx context.Context) (*models.SystemStats, error) {
	if cached := s.cachedLatest(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.statsRepo.Latest()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("system stats", "latest")
		}
		return nil, errs.Dependency("get latest stats", err)
	}

	s.cacheLatest(ctx, stats)
	return stats, nil
}

func (s *StatsService) Get(id uuid.UUID) (*models.SystemStats, error) {
	stats, err := s.statsRepo.GetByID(id)
	if err != nil {
		return nil, translate("get stats", "system stats", err)
	}
	return stats, nil
}

func (s *StatsService) List(limit int) ([]models.SystemStats, error) {
	snapshots, err := s.statsRepo.List(limit)
	if err != nil {
		return nil, translate("list stats", "system stats", err)
	}
	return snapshots, nil
}

func (s *StatsService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := translate("delete stats", "system stats", s.statsRepo.Delete(id)); err != nil {
		return err
	}
	if s.redisClient != nil {
		s.redisClient.Del(ctx, statsLatestKey)
	}
	return nil
}

func (s *StatsService) cacheLatest(ctx context.Context, stats *models.SystemStats) {
	if s.redisClient == nil {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	// Cache failures are ignored; the database remains authoritative.
	s.redisClient.Set(ctx, statsLatestKey, data, statsCacheTTL)
}

func (s *StatsService) cachedLatest(ctx context.Context) *models.SystemStats {
	if s.redisClient == nil {
		return nil
	}
	data, err := s.redisClient.Get(ctx, statsLatestKey).Bytes()
	if err != nil {
		return nil
	}
	var stats models.SystemStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil
	}
	return &stats
}

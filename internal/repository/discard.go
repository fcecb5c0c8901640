package repository

import (
	"context"

	"github.com/rocketscienceinc/morris-backend/internal/apperror"
	"github.com/rocketscienceinc/morris-backend/internal/entity"
)

// Discard repositories are used when no redis is configured. Nothing is kept.

type discardGame struct{}

func NewDiscardGameRepository() GameRepository {
	return discardGame{}
}

func (discardGame) CreateOrUpdate(context.Context, *entity.Game) error {
	return nil
}

func (discardGame) GetByID(context.Context, string) (*entity.Game, error) {
	return &entity.Game{}, apperror.ErrGameNotFound
}

func (discardGame) ListRecent(context.Context, int64) ([]string, error) {
	return nil, nil
}

type discardStats struct{}

func NewDiscardStatsRepository() StatsRepository {
	return discardStats{}
}

func (discardStats) RecordResult(context.Context, *entity.Game) error {
	return nil
}

func (discardStats) Get(context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"blogpost/internal/config"
	"blogpost/internal/model"
	sqliteClient "blogpost/internal/platform/sqlite"
)

type App struct {
	Config *config.Config
	DB     *gorm.DB

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	db, err := sqliteClient.New(ctx, cfg.SQLite.Path)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Blog{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir failed: %w", err)
	}

	return &App{
		Config:    cfg,
		DB:        db,
		StartedAt: time.Now(),
	}, nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return nil
	}
	return sqlDB.Close()
}

package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/cardlens/internal/config"
	"github.com/Veraticus/cardlens/internal/insights"
	"github.com/Veraticus/cardlens/internal/loader"
	"github.com/Veraticus/cardlens/internal/storage"
	"github.com/spf13/viper"
)

// setConfigDefaults registers the documented defaults for every viper key so
// a bare install works without a config file.
func setConfigDefaults() {
	viper.SetDefault("data.source", "local")
	viper.SetDefault("data.dir", "./data")
	viper.SetDefault("data.remote_index_url", "")
	viper.SetDefault("database.path", "$HOME/.local/share/cardlens/cardlens.db")
	viper.SetDefault("display.currency", "₺")

	defaults := insights.DefaultConfig()
	viper.SetDefault("analysis.high_utilization_threshold", defaults.HighUtilizationThreshold)
	viper.SetDefault("analysis.critical_utilization_threshold", defaults.CriticalUtilizationThreshold)
	viper.SetDefault("analysis.debt_indicators", defaults.DebtIndicators)
	viper.SetDefault("analysis.credit_indicators", defaults.CreditIndicators)
	viper.SetDefault("analysis.grace_period_days", defaults.GracePeriodDays)
	viper.SetDefault("analysis.trend_months", defaults.TrendMonths)
	viper.SetDefault("analysis.significant_change_threshold", defaults.SignificantChangeThreshold)
	viper.SetDefault("analysis.max_users_display", defaults.MaxUsersDisplay)
	viper.SetDefault("analysis.max_category_display", defaults.MaxCategoryDisplay)
}

// analysisConfig builds the engine configuration from viper.
func analysisConfig() insights.Config {
	return insights.Config{
		HighUtilizationThreshold:     viper.GetFloat64("analysis.high_utilization_threshold"),
		CriticalUtilizationThreshold: viper.GetFloat64("analysis.critical_utilization_threshold"),
		DebtIndicators:               viper.GetStringSlice("analysis.debt_indicators"),
		CreditIndicators:             viper.GetStringSlice("analysis.credit_indicators"),
		GracePeriodDays:              viper.GetInt("analysis.grace_period_days"),
		TrendMonths:                  viper.GetInt("analysis.trend_months"),
		SignificantChangeThreshold:   viper.GetFloat64("analysis.significant_change_threshold"),
		MaxUsersDisplay:              viper.GetInt("analysis.max_users_display"),
		MaxCategoryDisplay:           viper.GetInt("analysis.max_category_display"),
	}
}

// initStore opens the dataset cache with proper path expansion and runs
// migrations.
func initStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initSource builds the dataset source selected by data.source. The cleanup
// function releases whatever the source holds open.
func initSource(ctx context.Context, name string) (loader.Source, func(), error) {
	if name == "" {
		name = viper.GetString("data.source")
	}

	switch name {
	case "local":
		dir := config.ExpandPath(viper.GetString("data.dir"))
		return loader.NewLocalSource(dir), func() {}, nil
	case "remote":
		indexURL := viper.GetString("data.remote_index_url")
		if indexURL == "" {
			return nil, nil, fmt.Errorf("data.remote_index_url is required for the remote source")
		}
		return loader.NewRemoteSource(indexURL), func() {}, nil
	case "cache":
		store, err := initStore(ctx)
		if err != nil {
			return nil, nil, err
		}
		return loader.NewCacheSource(store), func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown data source %q (want local, remote, or cache)", name)
	}
}

package cmd

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "formprobe", configBaseName)
	assert.Equal(t, "formprobe.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "scenarios", scenariosFlagName)
	assert.Equal(t, "report", reportFlagName)
	assert.Equal(t, "event-log", eventLogFlagName)
	assert.Equal(t, "paths.scenarios", scenariosConfigKey)
	assert.Equal(t, "transform.target", transformTargetKey)
	assert.Equal(t, ".formprobe-reports", defaultReportsDir)
	assert.Equal(t, "./scenarios", defaultScenariosDir)
	assert.Equal(t, "go1.25", defaultTransformTarget)
	assert.Equal(t, "FORMPROBE", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, defaultReportsDir, viper.GetString(outputFlagName))
	assert.Equal(t, defaultScenariosDir, viper.GetString(scenariosConfigKey))
	assert.Equal(t, defaultTransformTarget, viper.GetString(transformTargetKey))

	assert.Equal(t, 5*time.Minute, modeTimeout())
	assert.Equal(t, defaultTransformTarget, transformOptions().TargetVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"empty", "", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"mixed case", "DeBuG", slog.LevelDebug},
		{"padded", "  info  ", slog.LevelInfo},
		{"numeric", "-4", slog.LevelDebug},
		{"garbage", "loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	configureLogger("", false)
	assert.NotNil(t, globalLogger)

	configureLogger("", true)
	assert.True(t, globalLogger.Enabled(context.Background(), slog.LevelDebug))
}

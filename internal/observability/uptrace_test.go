package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/football-sync/internal/config"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitUptrace_Disabled(t *testing.T) {
	core, logs := observer.New(logging.LevelInfo)
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "football-sync",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.FromZap(zap.New(core)))
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	require.Equal(t, 1, logs.FilterMessage("uptrace disabled").Len())
}

func TestInitUptrace_EnabledWithoutDSNStaysDisabled(t *testing.T) {
	core, logs := observer.New(logging.LevelInfo)
	cfg := config.Config{UptraceEnabled: true, UptraceDSN: "  "}

	shutdown, err := InitUptrace(cfg, logging.FromZap(zap.New(core)))
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	entries := logs.FilterMessage("uptrace disabled").All()
	require.Len(t, entries, 1)
	require.Equal(t, "UPTRACE_DSN empty", entries[0].ContextMap()["reason"])
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{}, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, stop())
}

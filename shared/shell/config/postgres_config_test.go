package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/shared/shell/config"
)

func Test_PostgresDSN_UsesEnvironment(t *testing.T) {
	// arrange
	t.Setenv(config.DatabaseURLEnv, "postgres://u:p@db:5432/rental")

	// act
	dsn := config.PostgresDSN()

	// assert
	assert.Equal(t, "postgres://u:p@db:5432/rental", dsn)
}

func Test_PostgresDSN_FallsBackToLocalDatabase_WhenUnset(t *testing.T) {
	// arrange
	t.Setenv(config.DatabaseURLEnv, "")

	// act
	dsn := config.PostgresDSN()

	// assert
	assert.Contains(t, dsn, "localhost:5432/gear_rental")
}

func Test_PostgresReplicaDSN_ReportsMissingReplica(t *testing.T) {
	// arrange
	t.Setenv(config.ReplicaDatabaseURLEnv, "")

	// act
	_, ok := config.PostgresReplicaDSN()

	// assert
	assert.False(t, ok)
}

func Test_PostgresPGXPoolConfig_AppliesPoolTuning(t *testing.T) {
	// act
	cfg, err := config.PostgresPGXPoolConfig("postgres://u:p@localhost:5432/rental")

	// assert
	require.NoError(t, err)
	assert.Equal(t, int32(20), cfg.MaxConns)
	assert.Equal(t, int32(2), cfg.MinConns)
}

func Test_PostgresPGXPoolConfig_Fails_WhenDSNIsMalformed(t *testing.T) {
	// act
	_, err := config.PostgresPGXPoolConfig("postgres://u:p@localhost:notaport/rental")

	// assert
	assert.ErrorIs(t, err, config.ErrCreatingPGXPoolFailed)
}

func Test_NewObservabilityProviders_Fails_WhenNoEndpointIsConfigured(t *testing.T) {
	// arrange
	t.Setenv(config.OTLPEndpointEnv, "")

	// act
	_, err := config.NewObservabilityProviders(context.Background(), "gear-rental", "test")

	// assert
	assert.ErrorIs(t, err, config.ErrNoOTLPEndpointConfigured)
}

func Test_NewObservabilityProviders_CreatesProviders_WhenEndpointIsConfigured(t *testing.T) {
	// arrange
	t.Setenv(config.OTLPEndpointEnv, "localhost:4318")

	// act
	providers, err := config.NewObservabilityProviders(context.Background(), "gear-rental", "test")

	// assert
	require.NoError(t, err)
	assert.NotNil(t, providers.TracerProvider)
	assert.NotNil(t, providers.MeterProvider)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = providers.Shutdown(ctx)
}

func Test_OpenEngine_OpensMemoryEngine(t *testing.T) {
	// act
	engine, closeEngine, err := config.OpenEngine(context.Background(), config.EngineConfig{Kind: config.EngineMemory})

	// assert
	require.NoError(t, err)
	require.NotNil(t, engine)
	closeEngine()
}

func Test_OpenEngine_Fails_WhenKindOrAdapterIsUnknown(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         config.EngineConfig
		expectedErr error
	}{
		{name: "unknown engine", cfg: config.EngineConfig{Kind: "mysql"}, expectedErr: config.ErrUnknownEngine},
		{
			name:        "unknown adapter",
			cfg:         config.EngineConfig{Kind: config.EnginePostgres, Adapter: "odbc"},
			expectedErr: config.ErrUnknownAdapter,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, _, err := config.OpenEngine(context.Background(), tc.cfg)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

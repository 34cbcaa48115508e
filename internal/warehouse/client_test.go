package warehouse_test

import (
	"context"
	"testing"

	"github.com/pharmacast/workforce-api/internal/config"
	"github.com/pharmacast/workforce-api/internal/warehouse"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewClient_DisabledConfig(t *testing.T) {
	logger := zap.NewNop()

	client, err := warehouse.NewClient(nil, logger)
	assert.NoError(t, err)
	assert.Nil(t, client)

	cfg := &config.WarehouseConfig{
		Enabled: false,
	}
	client, err = warehouse.NewClient(cfg, logger)
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewClient_MissingCredentials(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name string
		cfg  *config.WarehouseConfig
	}{
		{
			name: "missing URL",
			cfg: &config.WarehouseConfig{
				Enabled:  true,
				URL:      "",
				User:     "user",
				Password: "pass",
			},
		},
		{
			name: "missing user",
			cfg: &config.WarehouseConfig{
				Enabled:  true,
				URL:      "host:1433/cpws",
				User:     "",
				Password: "pass",
			},
		},
		{
			name: "missing password",
			cfg: &config.WarehouseConfig{
				Enabled:  true,
				URL:      "host:1433/cpws",
				User:     "user",
				Password: "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := warehouse.NewClient(tt.cfg, logger)
			assert.NoError(t, err)
			assert.Nil(t, client)
		})
	}
}

func TestClient_NilSafety(t *testing.T) {
	var client *warehouse.Client

	assert.False(t, client.IsEnabled())
	assert.NoError(t, client.Close())

	status := client.HealthCheck(context.Background())
	assert.Equal(t, "disabled", status.Status)
}

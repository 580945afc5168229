package checks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointConfig(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		wantErr  string
		wantWarn bool
	}{
		{
			name:     "https endpoint",
			endpoint: "https://api.devnet.solana.com",
		},
		{
			name:     "plain http to localhost",
			endpoint: "http://localhost:8899",
		},
		{
			name:     "plain http to a public host warns",
			endpoint: "http://rpc.example.com",
			wantWarn: true,
		},
		{
			name:     "websocket scheme rejected",
			endpoint: "ws://api.devnet.solana.com",
			wantErr:  "unsupported scheme",
		},
		{
			name:     "missing host rejected",
			endpoint: "https://",
			wantErr:  "missing host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := EndpointConfig("devnet", tt.endpoint).Run(context.Background())

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.wantWarn {
				require.Len(t, outcome.Warnings, 1)
				assert.Contains(t, outcome.Warnings[0], "plain http")
			} else {
				assert.Empty(t, outcome.Warnings)
			}
		})
	}
}

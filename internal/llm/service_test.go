package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsinyulin/ledgerchat/internal/common"
)

func TestExtractionServiceReturnsClientText(t *testing.T) {
	client := NewMockClient().Script("七月總支出 NT$25,100")
	svc := NewExtractionService(client, nil)

	text, err := svc.Call(context.Background(), "summarize")
	require.NoError(t, err)
	assert.Equal(t, "七月總支出 NT$25,100", text)
}

func TestTextServiceRetriesTransientFailures(t *testing.T) {
	client := NewMockClient().Fail(errors.New("connection reset")).Script("ok")
	svc := NewExtractionService(client, nil)

	text, err := svc.Call(context.Background(), "summarize")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Len(t, client.Calls(), 2)
}

func TestTextServiceExhaustsRetries(t *testing.T) {
	client := NewMockClient()
	for i := 0; i < 3; i++ {
		client.Fail(errors.New("boom"))
	}
	svc := NewReasoningService(client, nil)

	_, err := svc.Call(context.Background(), "analyze")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMaxRetries)
}

func TestNewClientFactory(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"mock", Config{Provider: "mock"}, false},
		{"local defaults", Config{Provider: "local"}, false},
		{"openai with key", Config{Provider: "openai", APIKey: "sk-test"}, false},
		{"openai missing key", Config{Provider: "openai"}, true},
		{"unknown", Config{Provider: "psychic"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

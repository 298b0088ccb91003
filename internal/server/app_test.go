package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/config"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = "memory"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.MetricsAddr = ""
	c.HashConcurrency = 1
	return c
}

func TestApp_PrepareSeedsAdmin(t *testing.T) {
	ctx := context.Background()
	app, err := newApp(ctx, memoryConfig(), logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.manager.Close() })

	require.NoError(t, app.prepare(ctx))

	res, err := app.accountService.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "Administrator", res.Account.DisplayName)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := newApp(context.Background(), memoryConfig(), logging.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, app.ready.Load, 10*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.False(t, app.ready.Load())
}

func TestApp_GRPCListenFailureStopsApp(t *testing.T) {
	c := memoryConfig()
	c.EndpointAddrGRPC = "bad-address"

	app, err := newApp(context.Background(), c, logging.Nop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop after listen failure")
	}
}

func TestNewApp_RejectsUnknownLogLevel(t *testing.T) {
	c := memoryConfig()
	c.LogLevel = "loud"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
}

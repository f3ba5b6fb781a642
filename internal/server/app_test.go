package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/cryptox"
	"github.com/dmitrijs2005/wastecms/internal/logging"
	"github.com/dmitrijs2005/wastecms/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	orig := cryptox.Cost
	cryptox.Cost = bcrypt.MinCost
	t.Cleanup(func() { cryptox.Cost = orig })

	c := &config.Config{}
	c.LoadDefaults()
	c.UploadDir = t.TempDir()
	c.EndpointAddr = "127.0.0.1:0"
	return c
}

func TestNewApp_MemoryMode(t *testing.T) {
	app, err := newApp(context.Background(), testConfig(t), logging.Discard())
	require.NoError(t, err)
	defer app.Close()

	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/admin/login", "application/json",
		strings.NewReader(`{"email":"admin@example.com","password":"admin"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewApp_UnknownStorage(t *testing.T) {
	c := testConfig(t)
	c.StorageBackend = "ftp"

	_, err := newApp(context.Background(), c, logging.Discard())
	require.ErrorContains(t, err, "unknown storage backend")
}

func TestNewApp_BadDSN(t *testing.T) {
	c := testConfig(t)
	c.DatabaseDSN = "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"

	_, err := newApp(context.Background(), c, logging.Discard())
	require.ErrorContains(t, err, "db init error")
}

func TestApp_ServeStopsOnCancel(t *testing.T) {
	app, err := newApp(context.Background(), testConfig(t), logging.Discard())
	require.NoError(t, err)
	defer app.Close()

	listen, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, listen) }()

	url := "http://" + listen.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

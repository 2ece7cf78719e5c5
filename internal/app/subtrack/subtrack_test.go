package subtrack

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subtrack/internal/config"
	"github.com/magabrotheeeer/subtrack/internal/lib/logger"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Env: "local",
		Storage: config.Storage{
			StoragePath:     filepath.Join(dir, "subscriptions.csv"),
			AuditLogPath:    filepath.Join(dir, "subscriptions_log.log"),
			MetricsTextfile: filepath.Join(dir, "subtrack.prom"),
		},
		Tracker: config.Tracker{ExpiringWindow: 14 * 24 * time.Hour, NoBanner: true},
	}
}

func TestApp_Run(t *testing.T) {
	cfg := testConfig(t)
	input := strings.Join([]string{
		"1", "John", "john@example.com", "2024-01-15", "3",
		"3", "John", "no longer needed",
		"4",
		"7",
	}, "\n") + "\n"

	var out bytes.Buffer
	app, err := New(cfg, logger.Discard(), strings.NewReader(input), &out)
	require.NoError(t, err)
	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "Subscription for John added. Expires on 2024-04-14.")
	assert.Contains(t, out.String(), "Subscription for John has been canceled.")
	assert.Contains(t, out.String(), "No subscriptions found.")

	data, err := os.ReadFile(cfg.StoragePath)
	require.NoError(t, err)
	assert.Equal(t, "Customer Name,Purchase Date,Months,Renewal Date,Email\n", string(data))

	audit, err := os.ReadFile(cfg.AuditLogPath)
	require.NoError(t, err)
	assert.Contains(t, string(audit), `msg="added subscription"`)
	assert.Contains(t, string(audit), `reason="no longer needed"`)

	prom, err := os.ReadFile(cfg.MetricsTextfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `subtrack_operations_total{operation="add",status="ok"} 1`)
	assert.Contains(t, string(prom), `subtrack_operations_total{operation="cancel",status="ok"} 1`)
}

func TestApp_RunCanceled(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetricsTextfile = ""

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	app, err := New(cfg, logger.Discard(), strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)
	assert.NoError(t, app.Run(ctx))
}

func TestNew_BadAuditPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.AuditLogPath = filepath.Join(t.TempDir(), "missing", "audit.log")

	_, err := New(cfg, logger.Discard(), strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
}

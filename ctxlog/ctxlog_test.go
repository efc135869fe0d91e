package ctxlog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cath-tools/strucore/ctxlog"
)

func TestDefaults(t *testing.T) {
	c := ctxlog.New()
	require.NotNil(t, c.Log())
	require.Empty(t, c.DataDirs())
}

func TestOptions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c := ctxlog.New(
		ctxlog.WithLogger(logger),
		ctxlog.WithDataDirs([]string{"/a", "/b"}),
		ctxlog.WithScratchRoot("/scratch"),
	)

	require.Equal(t, []string{"/a", "/b"}, c.DataDirs())
	require.Equal(t, "/scratch/strucore-deadbeef", c.ScratchDirFor("deadbeef"))

	c.Log().Info("hello")
	require.Contains(t, buf.String(), "hello")
}

func TestHashNamesDeterministic(t *testing.T) {
	a := ctxlog.HashNames("1abc", "region-A")
	b := ctxlog.HashNames("1abc", "region-A")
	c := ctxlog.HashNames("1abc", "region-B")
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
}

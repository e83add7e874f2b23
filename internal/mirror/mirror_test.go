package mirror_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"marrent/internal/mirror"
)

func TestPushAndPull(t *testing.T) {
	var stored atomic.Value
	stored.Store([]byte(nil))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.Method {
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			stored.Store(body)
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			data := stored.Load().([]byte)
			if data == nil {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write(data)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	local := filepath.Join(dir, "store.db")
	require.NoError(t, os.WriteFile(local, []byte("sqlite-bytes"), 0o644))

	c := mirror.NewClient(srv.URL, "tok", local)
	require.NoError(t, c.Push())
	require.Equal(t, []byte("sqlite-bytes"), stored.Load().([]byte))

	// fresh host: pull restores the file
	restored := filepath.Join(dir, "restored.db")
	c2 := mirror.NewClient(srv.URL, "tok", restored)
	require.NoError(t, c2.PullIfMissing())
	data, err := os.ReadFile(restored)
	require.NoError(t, err)
	require.Equal(t, []byte("sqlite-bytes"), data)

	// existing local file is left alone
	require.NoError(t, os.WriteFile(restored, []byte("local-edits"), 0o644))
	require.NoError(t, c2.PullIfMissing())
	data, _ = os.ReadFile(restored)
	require.Equal(t, []byte("local-edits"), data)
}

func TestPullIfMissingFirstRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	local := filepath.Join(t.TempDir(), "store.db")
	c := mirror.NewClient(srv.URL, "tok", local)
	require.NoError(t, c.PullIfMissing())
	_, err := os.Stat(local)
	require.True(t, os.IsNotExist(err))
}

// Package mirror keeps a copy of the store file on a remote blob endpoint.
// The endpoint is any HTTP service accepting GET/PUT of an opaque blob with
// a bearer token; pushes are best-effort and never block a request.
package mirror

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	applog "marrent/internal/log"
)

const pushAttempts = 3

type Client struct {
	BaseURL  string // e.g. https://blobs.example.com/marrent.db
	Token    string
	FilePath string // local sqlite file
	HTTP     *http.Client

	mu sync.Mutex // one push at a time
}

func NewClient(baseURL, token, filePath string) *Client {
	return &Client{
		BaseURL:  baseURL,
		Token:    token,
		FilePath: filePath,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

// PullIfMissing downloads the remote copy when no local store exists yet.
// A 404 from the mirror just means a first run; anything else is an error.
func (c *Client) PullIfMissing() error {
	if _, err := os.Stat(c.FilePath); err == nil {
		return nil
	}
	req, err := http.NewRequest(http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mirror pull: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return os.WriteFile(c.FilePath, data, 0o644)
}

// Push uploads the store file wholesale. Retried a fixed number of times,
// transient and permanent failures treated alike.
func (c *Client) Push() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.FilePath)
	if err != nil {
		return err
	}
	for i := 0; i < pushAttempts; i++ {
		if err = c.push(data); err == nil {
			return nil
		}
		time.Sleep(time.Second)
	}
	return err
}

func (c *Client) push(data []byte) error {
	req, err := http.NewRequest(http.MethodPut, c.BaseURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/octet-stream")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mirror push: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// PushAsync satisfies the services.Backup interface: fire-and-forget with a
// logged outcome.
func (c *Client) PushAsync(reason string) {
	go func() {
		err := c.Push()
		applog.Job("mirror.push", err, map[string]any{"reason": reason})
	}()
}

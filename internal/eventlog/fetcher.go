// Package eventlog retrieves the playback activity database snapshot from
// the media server host over SSH and caches it locally.
package eventlog

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/zzstar101/jellyfin-playback-report/internal/config"
)

// dialTimeout bounds the SSH connection attempt.
const dialTimeout = 15 * time.Second

// dialFunc matches ssh.Dial and exists so tests can stub the transport.
type dialFunc func(network, addr string, cfg *ssh.ClientConfig) (*ssh.Client, error)

// Fetcher pulls the activity database from the remote host. A stale cached
// copy is better than no report, so remote failures fall back to the cache
// when one exists.
type Fetcher struct {
	cfg    config.EventLogConfig
	logger *slog.Logger
	dial   dialFunc
}

// NewFetcher creates a snapshot fetcher.
func NewFetcher(cfg config.EventLogConfig, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		cfg:    cfg,
		logger: logger,
		dial:   ssh.Dial,
	}
}

// Fetch ensures a local snapshot exists and returns its path. With no SSH
// host configured the cached copy is used as-is. When the remote pull fails
// but a cached copy exists, the cached copy is reused with a warning.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	local := f.cfg.DBPath()

	if f.cfg.Host == "" {
		return local, nil
	}

	data, err := f.download(ctx)
	if err != nil {
		if _, statErr := os.Stat(local); statErr == nil {
			f.logger.Warn("Remote snapshot fetch failed, reusing cached copy",
				"error", err, "path", local)
			return local, nil
		}
		return "", fmt.Errorf("fetch snapshot: %w", err)
	}

	if err := os.MkdirAll(f.cfg.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	// Write to a temp file first so a failed transfer never clobbers a
	// usable cached snapshot.
	tmp, err := os.CreateTemp(f.cfg.CacheDir, "snapshot-*.db")
	if err != nil {
		return "", fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, local); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("replace snapshot: %w", err)
	}

	f.logger.Info("Fetched playback snapshot",
		"host", f.cfg.Host, "bytes", len(data), "path", local)
	return local, nil
}

// download reads the remote database file through an SSH session.
func (f *Fetcher) download(ctx context.Context) ([]byte, error) {
	clientCfg := &ssh.ClientConfig{
		User:            f.cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(f.cfg.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         dialTimeout,
	}

	addr := net.JoinHostPort(f.cfg.Host, strconv.Itoa(f.cfg.Port))
	client, err := f.dial("tcp", addr, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer client.Close()

	// ssh sessions don't take a context; closing the connection unblocks
	// the transfer when the caller gives up.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			client.Close()
		case <-done:
		}
	}()

	session, err := client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	defer session.Close()

	data, err := session.Output("cat " + shellQuote(f.cfg.RemotePath))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("read remote %s: %w", f.cfg.RemotePath, err)
	}
	return data, nil
}

// shellQuote single-quotes a path for the remote shell.
func shellQuote(s string) string {
	out := "'"
	for _, r := range s {
		if r == '\'' {
			out += `'\''`
			continue
		}
		out += string(r)
	}
	return out + "'"
}

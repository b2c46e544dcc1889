package loader

import (
	"context"
	"io"
	"net"
	"net/url"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/district91/leaderboard-cli/internal/config"
)

// FTPFetcher downloads source files from districts that publish their
// report exports on an FTP drop instead of the shared drive.
type FTPFetcher struct {
	timeout time.Duration
}

// NewFTPFetcher creates an FTPFetcher from fetch configuration.
func NewFTPFetcher(cfg config.FetchConfig) *FTPFetcher {
	timeout := time.Duration(cfg.FTPTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FTPFetcher{timeout: timeout}
}

// Fetch retrieves the FTP URL and returns the body plus the remote file
// name, which carries the export's update date.
func (f *FTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	host, remotePath, err := parseFTPURL(rawURL)
	if err != nil {
		return nil, "", err
	}

	zap.L().Debug("loader: ftp connecting", zap.String("host", host), zap.String("path", remotePath))

	conn, err := ftp.Dial(host, ftp.DialWithTimeout(f.timeout), ftp.DialWithContext(ctx))
	if err != nil {
		return nil, "", eris.Wrap(err, "loader: ftp dial")
	}
	defer conn.Quit()

	if err := conn.Login("anonymous", "anonymous@"); err != nil {
		return nil, "", eris.Wrap(err, "loader: ftp login")
	}

	resp, err := conn.Retr(remotePath)
	if err != nil {
		return nil, "", eris.Wrap(err, "loader: ftp retrieve")
	}
	defer resp.Close()

	body, err := io.ReadAll(resp)
	if err != nil {
		return nil, "", eris.Wrap(err, "loader: ftp read")
	}

	return body, path.Base(remotePath), nil
}

// parseFTPURL extracts host (with port) and path from an FTP URL.
func parseFTPURL(rawURL string) (host string, remotePath string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", eris.Wrap(err, "loader: parse ftp url")
	}
	if u.Scheme != "ftp" {
		return "", "", eris.Errorf("loader: expected ftp scheme, got %q", u.Scheme)
	}

	host = u.Host
	if _, _, splitErr := net.SplitHostPort(host); splitErr != nil {
		host = net.JoinHostPort(host, "21")
	}

	if u.Path == "" {
		return "", "", eris.New("loader: empty path in ftp url")
	}

	return host, u.Path, nil
}

// Package fetch retrieves remote playlist documents over HTTP.
//
// Bodies that are not valid UTF-8 are transparently decoded from GB18030,
// which covers the GBK-encoded lists some providers still serve. Every
// fetch failure is opaque to callers: one wrapped error per source, no
// partial content.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"antenna/internal/config"
	"antenna/internal/logging"
	"antenna/internal/services"
)

// maxBodyBytes bounds a single playlist download.
const maxBodyBytes = 64 << 20

// urlPattern extracts the first http(s) URL embedded in a source line.
var urlPattern = regexp.MustCompile(`https?://\S+`)

// Fetcher downloads playlist documents with a bounded per-request timeout.
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// New constructs a fetcher from application config.
func New(cfg *config.Config, logger *slog.Logger) *Fetcher {
	timeout := time.Duration(cfg.Fetch.Timeout) * time.Second
	if logger != nil {
		logger = logger.With(logging.String("component", "fetch"))
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: cfg.Fetch.UserAgent,
		logger:    logger,
	}
}

// Fetch downloads one playlist document. The raw source line may carry
// surrounding text; the first embedded http(s) URL is the one requested.
func (f *Fetcher) Fetch(ctx context.Context, source string) (string, error) {
	rawURL := urlPattern.FindString(source)
	if rawURL == "" {
		return "", services.Wrap(services.ErrFetch, "fetch", "resolve", fmt.Sprintf("no URL in source %q", source), nil)
	}

	requestID := uuid.NewString()
	logger := logging.WithContext(ctx, f.logger)
	logger.Debug("fetching source",
		logging.String("url", rawURL),
		logging.String("request_id", requestID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", services.Wrap(services.ErrFetch, "fetch", "build request", rawURL, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrFetch, "fetch", "get", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", services.Wrap(services.ErrFetch, "fetch", "get", fmt.Sprintf("%s returned HTTP %d", rawURL, resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", services.Wrap(services.ErrFetch, "fetch", "read body", rawURL, err)
	}

	content, err := decodeBody(body)
	if err != nil {
		return "", services.Wrap(services.ErrFetch, "fetch", "decode body", rawURL, err)
	}

	logger.Debug("fetched source",
		logging.String("url", rawURL),
		logging.String("request_id", requestID),
		logging.Int("bytes", len(body)),
	)
	return content, nil
}

// decodeBody returns the body as UTF-8 text, decoding from GB18030 when
// the raw bytes are not already valid UTF-8.
func decodeBody(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, _, err := transform.Bytes(simplifiedchinese.GB18030.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode gb18030: %w", err)
	}
	return strings.ToValidUTF8(string(decoded), ""), nil
}

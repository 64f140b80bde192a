package transport

import (
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Xaaaaii7/lliga-sub001/internal/logger"
	"github.com/andybalholm/brotli"
)

var httpClient *http.Client

// GetHTTPClient returns the shared HTTP client used for all remote fetches
func GetHTTPClient() (*http.Client, error) {
	if httpClient != nil {
		return httpClient, nil
	}

	client := &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
		},
		Timeout: 30 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Allow up to 10 redirects (default behavior)
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			return nil
		},
	}
	httpClient = client
	return client, nil
}

// GetHtml fetches a url and returns the decoded response body
func GetHtml(htmlUrl string) ([]byte, error) {
	client, err := GetHTTPClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	req, err := http.NewRequest("GET", htmlUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Add headers to make the request look more like a browser
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch html: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request returned error status %d", resp.StatusCode)
	}

	// handle compression (Content-Encoding)
	var reader io.ReadCloser = resp.Body
	contentEncoding := resp.Header.Get("Content-Encoding")
	switch contentEncoding {
	case "gzip":
		logger.Debug("Handling gzip compressed content")
		reader, err = NewGzipReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer reader.Close()
	case "deflate":
		logger.Debug("Handling deflate compressed content")
		reader, err = NewDeflateReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create deflate reader: %w", err)
		}
		defer reader.Close()
	case "br":
		logger.Debug("Handling brotli compressed content")
		reader, err = NewBrotliReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create brotli reader: %w", err)
		}
		defer reader.Close()
	default:
		if contentEncoding != "" {
			logger.Warn("Unknown content encoding:", contentEncoding)
		}
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return data, nil
}

// NewGzipReader creates a gzip reader from the provided io.ReadCloser
func NewGzipReader(r io.ReadCloser) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

// NewDeflateReader creates a deflate reader from the provided io.ReadCloser
func NewDeflateReader(r io.ReadCloser) (io.ReadCloser, error) {
	return flate.NewReader(r), nil
}

// NewBrotliReader creates a brotli reader from the provided io.ReadCloser
func NewBrotliReader(r io.ReadCloser) (io.ReadCloser, error) {
	return io.NopCloser(brotli.NewReader(r)), nil
}

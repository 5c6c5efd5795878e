package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"medicine-finder-service/internal/platform/obs"
)

// HTTPObjectStore uploads files to an S3-compatible object storage
// service over its REST API. Objects are written under
// {baseURL}/object/{bucket}/{path} and served publicly from
// {baseURL}/object/public/{bucket}/{path}.
type HTTPObjectStore struct {
	baseURL string
	apiKey  string
	session *http.Client
}

func NewHTTPObjectStore(baseURL, apiKey string, client *http.Client) *HTTPObjectStore {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPObjectStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		session: client,
	}
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// Put stores the object and returns its public URL. Re-uploading to the
// same path overwrites the previous object.
func (s *HTTPObjectStore) Put(
	ctx context.Context,
	bucket string,
	path string,
	data []byte,
	contentType string,
) (_ string, err error) {
	defer obs.Time(ctx, "storage.Put")(&err)

	if bucket == "" || path == "" {
		return "", errors.New("object store: bucket and path must not be empty")
	}

	url := fmt.Sprintf("%s/object/%s/%s", s.baseURL, bucket, path)

	resp, err := s.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
		req.Header.Set("Content-Type", contentType)
		// Overwrite rather than fail when the path already exists.
		req.Header.Set("x-upsert", "true")
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("put object %s/%s: %w", bucket, path, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return fmt.Sprintf("%s/object/public/%s/%s", s.baseURL, bucket, path), nil
}

func (s *HTTPObjectStore) Remove(ctx context.Context, bucket, path string) (err error) {
	defer obs.Time(ctx, "storage.Remove")(&err)

	if bucket == "" || path == "" {
		return errors.New("object store: bucket and path must not be empty")
	}

	url := fmt.Sprintf("%s/object/%s/%s", s.baseURL, bucket, path)

	resp, err := s.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
		return req, nil
	})
	if err != nil {
		return fmt.Errorf("remove object %s/%s: %w", bucket, path, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return nil
}

func (s *HTTPObjectStore) do(req *http.Request) (*http.Response, error) {
	resp, err := s.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 5xx responses)
// using exponential backoff while respecting context cancellation.
func (s *HTTPObjectStore) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 3
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := s.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

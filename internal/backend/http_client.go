package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type httpClient struct {
	base   string
	client *http.Client
	logger *zap.Logger
}

func (c *httpClient) BaseURL() string {
	return c.base
}

func (c *httpClient) Ask(ctx context.Context, input string) (AskResponse, error) {
	var out AskResponse
	if err := c.post(ctx, askPath, input, &out); err != nil {
		return AskResponse{}, err
	}
	return out, nil
}

func (c *httpClient) Search(ctx context.Context, input string) (SearchResponse, error) {
	var out SearchResponse
	if err := c.post(ctx, searchPath, input, &out); err != nil {
		return SearchResponse{}, err
	}
	return out, nil
}

func (c *httpClient) post(ctx context.Context, path, input string, out any) error {
	buf, err := json.Marshal(request{Input: input})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	log := c.logger.With(zap.String("request_id", requestID), zap.String("path", path))
	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("read body failed", zap.Int("status", resp.StatusCode), zap.Error(err))
		return fmt.Errorf("read %s response: %w", path, err)
	}
	log.Debug("response received",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := statusFailure(resp.StatusCode, body)
		log.Info("backend returned error", zap.Int("status", resp.StatusCode), zap.String("error", statusErr.Message))
		return statusErr
	}
	if err := decodeJSON(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

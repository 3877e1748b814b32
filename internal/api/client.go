// Пакет api — транспортный слой консоли: один http.Client с cookie jar
// (авторизация живёт в httpOnly cookies), единый разбор ошибок сервера и
// тихий refresh-and-retry при 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"courier-console/pkg/apperrors"
	"courier-console/pkg/constants"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// noRetryEndpoints — 401 с этих маршрутов отдаётся вызывающему как есть,
// без попытки обновить токен.
var noRetryEndpoints = []string{
	constants.AuthSignIn,
	constants.AuthSignUp,
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать cookie jar: %w", err)
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		baseURL:    baseURL,
		logger:     logger.Named("api_client"),
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) do(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	requestID := uuid.New().String()

	retried := false
	for {
		raw, status, err := c.roundTrip(ctx, method, endpoint, body, requestID)
		if err != nil {
			return nil, err
		}

		if status == http.StatusUnauthorized && !retried && !isNoRetry(endpoint) {
			retried = true
			if c.refreshAccessToken(ctx) {
				c.logger.Debug("токен обновлён, повторяем исходный запрос",
					zap.String("endpoint", endpoint),
					zap.String("request_id", requestID),
				)
				continue
			}
		}

		if status >= http.StatusBadRequest {
			return nil, parseApiError(status, raw)
		}
		return raw, nil
	}
}

func (c *Client) roundTrip(ctx context.Context, method, endpoint string, body any, requestID string) (json.RawMessage, int, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сериализации тела запроса: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, payload)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка создания запроса %s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, apperrors.ErrRequestCanceled
		}
		return nil, 0, fmt.Errorf("ошибка выполнения запроса %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка чтения ответа %s %s: %w", method, endpoint, err)
	}
	return raw, resp.StatusCode, nil
}

// refreshAccessToken выполняет ровно одну попытку обновления; успех
// определяется статусом ответа, тело не интересно — новые токены
// приходят в cookies.
func (c *Client) refreshAccessToken(ctx context.Context) bool {
	raw, status, err := c.roundTrip(ctx, http.MethodPost, constants.CredentialRefresh, struct{}{}, uuid.New().String())
	if err != nil {
		c.logger.Error("ошибка запроса refresh-token", zap.Error(err))
		return false
	}
	if status >= http.StatusBadRequest {
		c.logger.Warn("refresh-token отклонён сервером",
			zap.Int("status", status),
			zap.ByteString("body", raw),
		)
		return false
	}
	return true
}

func isNoRetry(endpoint string) bool {
	for _, e := range noRetryEndpoints {
		if e == endpoint {
			return true
		}
	}
	return false
}

// parseApiError разбирает тело ошибки сервера: status + message плюс
// произвольные дополнительные поля.
func parseApiError(status int, raw []byte) error {
	extra := map[string]any{}
	if len(raw) > 0 {
		// Некорректный JSON в теле ошибки не должен маскировать сам факт ошибки.
		_ = json.Unmarshal(raw, &extra)
	}

	message := ""
	if m, ok := extra["message"].(string); ok {
		message = m
		delete(extra, "message")
	}
	delete(extra, "status")

	return apperrors.NewApiError(status, message, extra)
}

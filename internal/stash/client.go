package stash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"stash-connect/internal/payload"
)

const DefaultBaseURL = "https://api.stashcat.com"

// API define el transporte contra el servicio remoto. Devuelve el objeto "payload" de la respuesta.
type API interface {
	Post(ctx context.Context, path string, form url.Values) (payload.Record, error)
}

// HTTPClient implementa API con formularios POST autenticados por client_key/device_id.
type HTTPClient struct {
	baseURL   string
	clientKey string
	deviceID  string
	client    *http.Client
	logger    *zap.Logger
}

// NewHTTPClient construye un cliente apuntando a la API del servicio.
func NewHTTPClient(baseURL, clientKey, deviceID string, logger *zap.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		clientKey: clientKey,
		deviceID:  deviceID,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
}

func (c *HTTPClient) Post(ctx context.Context, path string, form url.Values) (payload.Record, error) {
	body := url.Values{}
	for k, v := range form {
		body[k] = v
	}
	body.Set("client_key", c.clientKey)
	body.Set("device_id", c.deviceID)

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("stash error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, classify(&APIError{StatusCode: resp.StatusCode, Path: path, Message: http.StatusText(resp.StatusCode)})
	}

	var envelope struct {
		Status struct {
			Value        string `json:"value"`
			ShortMessage string `json:"short_message"`
			Message      string `json:"message"`
		} `json:"status"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if !strings.EqualFold(envelope.Status.Value, "OK") {
		msg := envelope.Status.Message
		if msg == "" {
			msg = envelope.Status.ShortMessage
		}
		return nil, classify(&APIError{StatusCode: resp.StatusCode, Path: path, Message: msg})
	}

	if len(envelope.Payload) == 0 || string(envelope.Payload) == "null" {
		return payload.Record{}, nil
	}
	rec, err := payload.Decode(envelope.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode payload of %s: %w", path, err)
	}
	return rec, nil
}

var (
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission denied")
)

// APIError es un fallo reportado por el servicio. Kind es ErrNotFound, ErrPermission o nil.
type APIError struct {
	StatusCode int
	Path       string
	Message    string
	Kind       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stash %s (%d): %s", e.Path, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

func classify(e *APIError) *APIError {
	msg := strings.ToLower(e.Message)
	switch {
	case e.StatusCode == http.StatusNotFound,
		strings.Contains(msg, "not found"),
		strings.Contains(msg, "does not exist"):
		e.Kind = ErrNotFound
	case e.StatusCode == http.StatusUnauthorized,
		e.StatusCode == http.StatusForbidden,
		strings.Contains(msg, "permission"),
		strings.Contains(msg, "access denied"),
		strings.Contains(msg, "not allowed"):
		e.Kind = ErrPermission
	}
	return e
}

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shoplite/internal/logger"

	"github.com/sony/gobreaker/v2"
)

const (
	defaultBaseURL = "http://localhost:3000"
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 4 << 20
)

var errServerStatus = errors.New("server error status")

// BreakerOptions 熔断器参数
type BreakerOptions struct {
	Enabled             bool
	ConsecutiveFailures int
	OpenTimeout         time.Duration
	HalfOpenRequests    int
}

// Options 客户端参数
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Breaker    BreakerOptions
}

// Client 远端 REST 存储客户端（唯一执行网络 I/O 的组件）
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*rawResponse]
}

type rawResponse struct {
	statusCode int
	body       []byte
}

// New 创建客户端
func New(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: httpClient,
	}
	if opts.Breaker.Enabled {
		c.breaker = newBreaker(opts.Breaker)
	}
	return c
}

// Users 用户资源
func (c *Client) Users() *UserResource {
	return &UserResource{client: c}
}

// Products 商品资源
func (c *Client) Products() *ProductResource {
	return &ProductResource{client: c}
}

func newBreaker(opts BreakerOptions) *gobreaker.CircuitBreaker[*rawResponse] {
	failures := opts.ConsecutiveFailures
	if failures <= 0 {
		failures = 5
	}
	openTimeout := opts.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = 10 * time.Second
	}
	halfOpen := opts.HalfOpenRequests
	if halfOpen <= 0 {
		halfOpen = 1
	}
	return gobreaker.NewCircuitBreaker[*rawResponse](gobreaker.Settings{
		Name:        "remote-store",
		MaxRequests: uint32(halfOpen),
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failures)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warnw("gateway_breaker_state_changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// getJSON 发起 GET 请求并解析 JSON；failMessage 用于非成功响应
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, failMessage string, dest interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := checkStatus(resp, failMessage); err != nil {
		return err
	}
	return decodeBody(resp.body, dest)
}

// putJSON 发起整体覆盖写入
func (c *Client) putJSON(ctx context.Context, path string, payload interface{}, failMessage string, dest interface{}) error {
	resp, err := c.do(ctx, http.MethodPut, path, nil, payload)
	if err != nil {
		return err
	}
	if err := checkStatus(resp, failMessage); err != nil {
		return err
	}
	if dest == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	return decodeBody(resp.body, dest)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload interface{}) (*rawResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, unavailable("encode request failed", err)
		}
		body = encoded
	}
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	send := func() (*rawResponse, error) {
		reqCtx, cancel := c.withDefaultTimeout(ctx)
		defer cancel()
		req, err := http.NewRequestWithContext(reqCtx, method, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, unavailable("build request failed", err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, unavailable("http request failed", err)
		}
		defer resp.Body.Close()
		respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, unavailable("read response failed", err)
		}
		result := &rawResponse{statusCode: resp.StatusCode, body: respBody}
		if resp.StatusCode >= http.StatusInternalServerError {
			return result, errServerStatus
		}
		return result, nil
	}

	var (
		resp *rawResponse
		err  error
	)
	if c.breaker != nil {
		resp, err = c.breaker.Execute(send)
	} else {
		resp, err = send()
	}
	switch {
	case err == nil:
		return resp, nil
	case errors.Is(err, errServerStatus):
		return resp, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		logger.Debugw("gateway_breaker_rejected", "method", method, "path", path)
		return nil, unavailable("circuit open", err)
	default:
		logger.Debugw("gateway_request_failed", "method", method, "path", path, "error", err)
		return nil, err
	}
}

func (c *Client) withDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func checkStatus(resp *rawResponse, failMessage string) error {
	if resp == nil {
		return unavailable("empty response", nil)
	}
	if resp.statusCode >= 200 && resp.statusCode < 300 {
		return nil
	}
	kind := ErrRemoteFailure
	if resp.statusCode == http.StatusNotFound {
		kind = ErrNotFound
	}
	return &RemoteError{Kind: kind, StatusCode: resp.statusCode, Message: failMessage}
}

func decodeBody(body []byte, dest interface{}) error {
	if err := json.Unmarshal(body, dest); err != nil {
		snippet := string(body)
		if len(snippet) > 100 {
			snippet = snippet[:100] + "..."
		}
		return unavailable("invalid json response: "+snippet, err)
	}
	return nil
}

package client

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/qtmops/coco-cloner/internal/pkg/idgenerator"
	"github.com/qtmops/coco-cloner/internal/pkg/version"
)

const (
	RequestTimeout   = 45 * time.Second
	HttpTimeout      = 30 * time.Second
	IdleConnTimeout  = 90 * time.Second
	KeepAlive        = 30 * time.Second
	MaxIdleConns     = 64
	RetryCount       = 5
	RetryWaitTime    = 100 * time.Millisecond
	RetryWaitTimeMax = 3 * time.Second
)

// Client - wrapped resty HTTP client with retry and request logging.
type Client struct {
	parentCtx context.Context
	logger    *Logger
	resty     *resty.Client
	retries   map[*resty.Request]uint
}

func NewClient(parentCtx context.Context, logger *zap.SugaredLogger, verbose bool) *Client {
	client := &Client{}
	client.logger = &Logger{logger}
	client.parentCtx = parentCtx
	client.resty = createHttpClient(client.logger)
	client.retries = make(map[*resty.Request]uint)
	setupLogs(client, verbose)
	return client
}

func (c Client) WithHostUrl(hostUrl string) *Client {
	c.resty.SetBaseURL(hostUrl)
	return &c
}

func (c *Client) R() *resty.Request {
	r := c.resty.R()
	r.SetContext(c.parentCtx)
	r.SetHeader("X-Request-Id", idgenerator.RequestId())
	return r
}

func (c *Client) Resty() *resty.Client {
	return c.resty
}

func (c *Client) HostUrl() string {
	return c.resty.BaseURL
}

func (c *Client) SetHeader(header, value string) *Client {
	c.resty.SetHeader(header, value)
	return c
}

func (c *Client) SetError(err interface{}) *Client {
	c.resty.SetError(err)
	return c
}

func createHttpClient(logger *Logger) *resty.Client {
	r := resty.New()
	r.SetLogger(logger)
	r.SetHeader("User-Agent", fmt.Sprintf("coco-cloner/%s", version.BuildVersion))
	r.SetHeader("Accept", "application/json, text/plain, */*")
	r.SetTimeout(RequestTimeout)
	r.SetTransport(createTransport())
	r.SetRetryCount(RetryCount)
	r.SetRetryWaitTime(RetryWaitTime)
	r.SetRetryMaxWaitTime(RetryWaitTimeMax)
	r.AddRetryCondition(retryCondition())
	return r
}

// retryCondition - retry on network errors and selected HTTP status codes.
func retryCondition() func(response *resty.Response, err error) bool {
	return func(response *resty.Response, err error) bool {
		// On network errors
		if err != nil && (response == nil || response.StatusCode() == 0) {
			return true
		}

		switch response.StatusCode() {
		case
			http.StatusRequestTimeout,
			http.StatusConflict,
			http.StatusLocked,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
}

// createTransport with custom timeouts.
func createTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   HttpTimeout,
		KeepAlive: KeepAlive,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          MaxIdleConns,
		IdleConnTimeout:       IdleConnTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConnsPerHost:   MaxIdleConns,
	}
}

func setupLogs(client *Client, verbose bool) {
	// Debug full request and response if verbose = true
	// Secrets are hidden, see Logger
	if verbose {
		client.resty.SetDebug(true)
		client.resty.SetDebugBodyLimit(32 * 1024)
	}

	client.resty.AddRetryHook(func(response *resty.Response, err error) {
		client.retries[response.Request]++
		attempt := client.retries[response.Request]
		if int(attempt) <= client.resty.RetryCount {
			client.logger.Warnf("%s | Retrying %dx ..", responseToLog(response), attempt)
		}
	})

	// Log each request when done, convert HTTP errors to Go errors
	client.resty.OnAfterResponse(func(c *resty.Client, res *resty.Response) error {
		req := res.Request
		if res.IsSuccess() {
			client.logger.Debugf("%s", responseToLog(res))
			return nil
		}

		// Set response to error if supported
		if err, ok := res.Error().(ErrorWithResponse); ok {
			err.SetResponse(res)
			if v, ok := err.(error); ok {
				return v
			}
		}

		if res.IsError() {
			return fmt.Errorf(`%s %s | returned http code %d`, req.Method, req.URL, res.StatusCode())
		}
		return nil
	})
}

func responseToLog(res *resty.Response) string {
	req := res.Request
	return fmt.Sprintf("%s %s | %d | %s", req.Method, req.URL, res.StatusCode(), res.Time())
}

// ErrorWithResponse - error body that keeps the HTTP response it came from.
type ErrorWithResponse interface {
	SetResponse(response *resty.Response)
	HttpStatus() int
}

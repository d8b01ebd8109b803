package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// Default http client timeout in secs.
	defaultHttpClientTimeout = 30 * time.Second
)

type (
	// Client is the base for http/https calls
	Client struct {
		httpClient *http.Client
	}

	// ReqConfig models the configuration options for requests.
	ReqConfig struct {
		Payload []byte
		Method  string
		HttpUrl string
		// If IsRetByte is set to true, client.Do stores the raw body in
		// RetBytes and leaves decoding to the caller.
		IsRetByte bool
		RetBytes  []byte
	}
)

// NewClient configures and return a new client
func NewClient() (c *Client) {
	return &Client{
		httpClient: &http.Client{
			Timeout:   defaultHttpClientTimeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
	}
}

func (c *Client) requestFilter(ctx context.Context, reqConfig *ReqConfig) (req *http.Request, err error) {
	req, err = http.NewRequestWithContext(ctx, reqConfig.Method, reqConfig.HttpUrl, bytes.NewBuffer(reqConfig.Payload))
	if err != nil {
		return
	}
	if reqConfig.Method == http.MethodPost || reqConfig.Method == http.MethodPut {
		req.Header.Add("Content-Type", "application/json;charset=utf-8")
	}
	req.Header.Add("Accept", "application/json")
	return
}

// Do prepare and process HTTP request to backend resources.
func (c *Client) Do(ctx context.Context, reqConfig *ReqConfig, response interface{}) (err error) {
	if _, err := url.ParseRequestURI(reqConfig.HttpUrl); err != nil {
		return fmt.Errorf("error: url not properly constituted: %v", err)
	}

	var req *http.Request
	req, err = c.requestFilter(ctx, reqConfig)
	if err != nil {
		return err
	}

	if req == nil {
		return errors.New("error: nil request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewError(ErrNotConnected, err)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return NewError(ErrUnavailable, fmt.Errorf("status: %v resp: %s", resp.Status, body))
	}

	if reqConfig.IsRetByte {
		reqConfig.RetBytes = body
		return nil
	}

	return json.Unmarshal(body, response)
}

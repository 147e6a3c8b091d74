package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
)

const (
	headerProject        = "X-Appwrite-Project"
	headerResponseFormat = "X-Appwrite-Response-Format"
	headerFallbackCookie = "X-Fallback-Cookies"
	headerID             = "X-Appwrite-ID"
	headerContentRange   = "Content-Range"
	headerSDKName        = "X-SDK-Name"
	headerSDKPlatform    = "X-SDK-Platform"
	headerSDKLanguage    = "X-SDK-Language"
	headerSDKVersion     = "X-SDK-Version"
	contentTypeJSON      = "application/json"
)

// buildURL joins the endpoint with path and query
func (c *Client) buildURL(path string, query url.Values) string {
	reqURL := c.endpoint + path
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}
	return reqURL
}

// publicURL builds a URL that is fetched directly (image tags, players) rather than
// through the client, so the project travels as a query parameter.
func (c *Client) publicURL(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("project", c.projectID)
	return c.buildURL(path, query)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set(headerProject, c.projectID)
	req.Header.Set(headerResponseFormat, responseFormat)
	req.Header.Set(headerSDKName, sdkName)
	req.Header.Set(headerSDKPlatform, "client")
	req.Header.Set(headerSDKLanguage, "go")
	req.Header.Set(headerSDKVersion, sdkVersion)
	req.Header.Set("User-Agent", fmt.Sprintf("%s/%s (%s; %s)", sdkName, sdkVersion, runtime.GOOS, runtime.GOARCH))
	if origin := c.origin(); origin != "" {
		req.Header.Set("Origin", origin)
	}
	if session := c.sessionCredential(); session != "" {
		req.Header.Set(headerFallbackCookie, session)
	}
}

// doRequest performs a JSON request and decodes the response into result
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	return c.do(req, result)
}

// do executes req, captures any session credential and decodes the response
func (c *Client) do(req *http.Request, result interface{}) error {
	c.logger.Debug("appwrite request", "method", req.Method, "path", req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("appwrite request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.captureSession(resp)

	if resp.StatusCode >= 400 {
		apiErr := parseError(resp.StatusCode, respBody)
		c.logger.Debug("appwrite error response", "status", resp.StatusCode, "error", apiErr)
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			c.logger.Error("JSON parse error", "error", err, "bodyLen", len(respBody))
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// captureSession stores the session credential handed out by the server.
// Native clients receive it in X-Fallback-Cookies; a plain Set-Cookie of the
// project's session cookie is converted to the same form.
func (c *Client) captureSession(resp *http.Response) {
	if v := resp.Header.Get(headerFallbackCookie); v != "" {
		c.setSession(v)
		return
	}

	name := "a_session_" + strings.ToLower(c.projectID)
	for _, cookie := range resp.Cookies() {
		if strings.ToLower(cookie.Name) != name || cookie.Value == "" {
			continue
		}
		encoded, err := json.Marshal(map[string]string{cookie.Name: cookie.Value})
		if err != nil {
			return
		}
		c.setSession(string(encoded))
		return
	}
}

// get performs a GET request
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	return c.doRequest(ctx, http.MethodGet, path, query, nil, result)
}

// post performs a POST request
func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	return c.doRequest(ctx, http.MethodPost, path, nil, body, result)
}

// delete performs a DELETE request
func (c *Client) delete(ctx context.Context, path string) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil, nil)
}

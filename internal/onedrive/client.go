// Package onedrive is a Microsoft Graph client for OneDrive items.
package onedrive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/skylight/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Skylight/1.0"

	// Graph caps $top at 200 for children listings
	pageSize = 200

	itemSelect   = "id,name,size,webUrl,lastModifiedDateTime,folder,file,image,photo,video"
	detailSelect = itemSelect + ",@microsoft.graph.downloadUrl"
	maxBodySize  = 64 << 20
)

// Client implements domain.MediaStore for the OneDrive Graph API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ domain.MediaStore = (*Client)(nil)

// NewClient creates a new Graph API client
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs an authenticated GET and returns the body of a 2xx response.
// path may be relative to the base URL or an absolute URL (paging links).
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		reqURL = c.baseURL + path
	}
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.ownsURL(reqURL) {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("graph request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("graph request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("graph request error", "status", resp.StatusCode, "body", string(body))
		return nil, statusError(resp.StatusCode, body)
	}

	return body, nil
}

// ownsURL reports whether the token may be sent to u. Download and
// thumbnail URLs are pre-authenticated and live on other hosts.
func (c *Client) ownsURL(u string) bool {
	return strings.HasPrefix(u, c.baseURL+"/") || u == c.baseURL
}

func statusError(code int, body []byte) *domain.StatusError {
	se := &domain.StatusError{Code: code, Body: string(body)}
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		se.Err = domain.ErrAuthFailed
	case http.StatusNotFound:
		se.Err = domain.ErrItemNotFound
	}
	return se
}

// itemPath addresses an item by id; "root" and "" mean the drive root
func itemPath(id string) string {
	if id == "" || id == "root" {
		return "/me/drive/root"
	}
	return "/me/drive/items/" + url.PathEscape(id)
}

// GetItem fetches metadata with thumbnails and tags expanded
func (c *Client) GetItem(ctx context.Context, id string) (*domain.MediaPayload, error) {
	query := url.Values{}
	query.Set("$expand", "thumbnails,tags")
	query.Set("$select", detailSelect)

	body, err := c.doRequest(ctx, itemPath(id), query)
	if err != nil {
		return nil, err
	}

	var item DriveItem
	if err := json.Unmarshal(body, &item); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse item: %w", err)
	}
	return MapPayload(item), nil
}

// ListChildren returns every entry of a folder, following paging links
func (c *Client) ListChildren(ctx context.Context, folderID string) (*domain.Folder, error) {
	folder := &domain.Folder{ID: folderID}
	if folderID == "" {
		folder.ID = "root"
	}

	// Folder name for the column title
	body, err := c.doRequest(ctx, itemPath(folderID), url.Values{"$select": {"id,name"}})
	if err != nil {
		return nil, err
	}
	var self DriveItem
	if err := json.Unmarshal(body, &self); err != nil {
		return nil, fmt.Errorf("failed to parse folder: %w", err)
	}
	folder.Name = self.Name

	query := url.Values{}
	query.Set("$top", fmt.Sprintf("%d", pageSize))
	query.Set("$select", itemSelect)

	next := itemPath(folderID) + "/children"
	for next != "" {
		body, err := c.doRequest(ctx, next, query)
		if err != nil {
			return nil, err
		}
		var page ChildrenPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("failed to parse children: %w", err)
		}
		folder.Items = append(folder.Items, MapItems(page.Value)...)

		// nextLink already carries the query
		next, query = page.NextLink, nil
	}

	folder.FetchedAt = time.Now()
	c.logger.Debug("listed folder", "folderID", folder.ID, "items", len(folder.Items))
	return folder, nil
}

// Download fetches the bytes behind a URL (thumbnails, small files)
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" {
		return nil, errors.New("empty url")
	}
	return c.doRequest(ctx, rawURL, nil)
}

// ProbeStream requests the first byte of a stream to check it is reachable
func (c *Client) ProbeStream(ctx context.Context, rawURL string) error {
	if rawURL == "" {
		return errors.New("item has no stream url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Range", "bytes=0-0")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return statusError(resp.StatusCode, body)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
	return nil
}

// FetchDriveInfo returns the signed-in user's drive; used to verify a token
func (c *Client) FetchDriveInfo(ctx context.Context) (*Drive, error) {
	body, err := c.doRequest(ctx, "/me/drive", nil)
	if err != nil {
		return nil, err
	}
	var drive Drive
	if err := json.Unmarshal(body, &drive); err != nil {
		return nil, fmt.Errorf("failed to parse drive: %w", err)
	}
	return &drive, nil
}

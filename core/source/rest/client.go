package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"contentsync/core/source"
	"contentsync/core/syncerr"
	"contentsync/core/utils"

	"go.uber.org/zap"
)

// Environment modes.
const (
	ModeTest = "test"
	ModeProd = "prod"
)

// apiKeyGroups is the number of dash-separated groups in a valid API key.
const apiKeyGroups = 5

// Status vocabulary of the organization API.
const (
	statusFound    = "ORGANIZATION_FOUND"
	statusNotFound = "ORGANIZATION_NOT_FOUND"
	statusError    = "ERROR"
)

// Endpoint paths per request type.
var endpoints = map[string]string{
	"list":         "organizationList",
	"availability": "organizationAvailability",
	"arrangements": "arrangementList",
}

// queryDateLayout is the date format the API expects in query parameters.
const queryDateLayout = "2006-01-02"

// Client talks to the organization REST API. It implements the record
// source contract and additionally exposes the availability and
// arrangement endpoints.
type Client struct {
	cfg    Config
	mode   string
	http   *http.Client
	logger *zap.Logger
}

// NewClient validates both environments and the selected mode.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if err := validateEnvironment(ModeTest, cfg.Test); err != nil {
		return nil, err
	}
	if err := validateEnvironment(ModeProd, cfg.Prod); err != nil {
		return nil, err
	}
	if err := validateMode(cfg.Mode); err != nil {
		return nil, err
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 365
	}
	return &Client{
		cfg:    cfg,
		mode:   cfg.Mode,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: logger,
	}, nil
}

func validateMode(mode string) error {
	if mode != ModeTest && mode != ModeProd {
		return syncerr.Newf(syncerr.KindSetup, "api mode %q is not valid", mode)
	}
	return nil
}

func validateEnvironment(name string, env Environment) error {
	if env.URL == "" {
		return syncerr.Newf(syncerr.KindSetup, "url for the %s environment is required", name)
	}
	parsed, err := url.Parse(env.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return syncerr.Newf(syncerr.KindSetup, "url %q for the %s environment is not valid", env.URL, name)
	}
	if env.APIKey == "" {
		return syncerr.Newf(syncerr.KindSetup, "api key for the %s environment is required", name)
	}
	if len(strings.Split(env.APIKey, "-")) != apiKeyGroups {
		return syncerr.Newf(syncerr.KindSetup, "api key for the %s environment is not valid", name)
	}
	return nil
}

// SetMode switches the active environment.
func (c *Client) SetMode(mode string) error {
	if err := validateMode(mode); err != nil {
		return err
	}
	c.mode = mode
	return nil
}

// Mode returns the active environment name.
func (c *Client) Mode() string {
	return c.mode
}

func (c *Client) environment() Environment {
	if c.mode == ModeProd {
		return c.cfg.Prod
	}
	return c.cfg.Test
}

// call performs a GET against the named endpoint, injects the API key and
// decodes the enveloped JSON response. The status field drives error
// classification.
func (c *Client) call(ctx context.Context, endpointType string, params url.Values) (map[string]any, error) {
	env := c.environment()

	if params == nil {
		params = url.Values{}
	}
	params.Set("key", env.APIKey)

	endpoint := fmt.Sprintf("%s/%s?%s", env.URL, endpoints[endpointType], params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, syncerr.Wrap(syncerr.KindRequest, "failed to build API request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, syncerr.Wrap(syncerr.KindRequest, "unable to communicate with the organization API", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return map[string]any{}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, syncerr.Wrap(syncerr.KindRequest, "unable to read API response", err)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, syncerr.Newf(syncerr.KindRequest,
			"unable to decode API response (status code %d)", resp.StatusCode)
	}

	status, ok := result["status"].(string)
	if !ok {
		return nil, syncerr.Newf(syncerr.KindRequest,
			"API response carries no status (status code %d)", resp.StatusCode)
	}
	switch status {
	case statusNotFound:
		return nil, syncerr.New(syncerr.KindNotFound, "organization was not found in the API")
	case statusError:
		return nil, syncerr.Newf(syncerr.KindRequest,
			"API returned an error status: %s", utils.SafeString(result["error"]))
	default:
		return result, nil
	}
}

// window returns the date range used for full list fetches.
func (c *Client) window() (string, string) {
	now := time.Now()
	return now.Format(queryDateLayout), now.AddDate(0, 0, c.cfg.WindowDays).Format(queryDateLayout)
}

// OrganizationList fetches all organizations in the date range.
func (c *Client) OrganizationList(ctx context.Context, dateFrom, dateUntil string) ([]map[string]any, error) {
	if err := validateDate(dateFrom); err != nil {
		return nil, err
	}
	if err := validateDate(dateUntil); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("dateFrom", dateFrom)
	params.Set("dateUntil", dateUntil)
	result, err := c.call(ctx, "list", params)
	if err != nil {
		return nil, err
	}

	rawList, ok := result["organizations"].([]any)
	if !ok {
		return nil, syncerr.New(syncerr.KindRequest, "organization list is not in the API response")
	}
	return toMapList(rawList), nil
}

// OrganizationAvailability fetches the availability snapshot for one
// organization.
func (c *Client) OrganizationAvailability(ctx context.Context, organizationID string) (map[string]any, error) {
	params := url.Values{}
	params.Set("id", organizationID)
	result, err := c.call(ctx, "availability", params)
	if err != nil {
		return nil, err
	}

	org, ok := result["organization"].(map[string]any)
	if !ok {
		return nil, syncerr.New(syncerr.KindRequest, "organization is not in the availability response").
			WithRecord(organizationID)
	}
	return org, nil
}

// ArrangementList fetches all products with their arrangements in the date
// range.
func (c *Client) ArrangementList(ctx context.Context, dateFrom, dateUntil string) ([]map[string]any, error) {
	if err := validateDate(dateFrom); err != nil {
		return nil, err
	}
	if err := validateDate(dateUntil); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("dateFrom", dateFrom)
	params.Set("dateUntil", dateUntil)
	result, err := c.call(ctx, "arrangements", params)
	if err != nil {
		return nil, err
	}

	rawList, ok := result["products"].([]any)
	if !ok {
		return nil, syncerr.New(syncerr.KindRequest, "arrangement list is not in the API response")
	}
	return toMapList(rawList), nil
}

// ArrangementsByOrganization filters the arrangement list down to the
// arrangements tied to one organization, tagging each with its product id.
// At most one arrangement per product is kept.
func (c *Client) ArrangementsByOrganization(ctx context.Context, organizationID, dateFrom, dateUntil string) ([]map[string]any, error) {
	products, err := c.ArrangementList(ctx, dateFrom, dateUntil)
	if err != nil {
		return nil, err
	}

	var matches []map[string]any
	for _, product := range products {
		arrangements, _ := product["arrangements"].([]any)
		for _, raw := range arrangements {
			arrangement, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			org, _ := arrangement["organization"].(map[string]any)
			if org == nil {
				continue
			}
			if utils.SafeString(org["id"]) != organizationID {
				continue
			}
			arrangement["product_id"] = utils.SafeString(product["id"])
			matches = append(matches, arrangement)
			break
		}
	}
	return matches, nil
}

// GetAllRecords implements the record source contract using the configured
// date window.
func (c *Client) GetAllRecords(ctx context.Context) (map[string]source.RawRecord, error) {
	from, until := c.window()
	list, err := c.OrganizationList(ctx, from, until)
	if err != nil {
		return nil, err
	}

	records := make(map[string]source.RawRecord, len(list))
	for _, item := range list {
		id := utils.SafeString(item["id"])
		if id == "" {
			if c.logger != nil {
				c.logger.Warn("Skipping organization without an id")
			}
			continue
		}
		rec := source.RawRecord(item)
		rec[source.IDField] = id
		records[id] = rec
	}
	return records, nil
}

// GetRecordByID fetches one organization through the availability
// endpoint, which returns the full record for a single ID.
func (c *Client) GetRecordByID(ctx context.Context, id string) (source.RawRecord, error) {
	org, err := c.OrganizationAvailability(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := source.RawRecord(org)
	rec[source.IDField] = id
	return rec, nil
}

// DownloadMedia fetches a media binary from an absolute URL. Bodies served
// as HTML or XML are rejected, remote stores report errors that way while
// still answering 200.
func (c *Client) DownloadMedia(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, syncerr.Wrap(syncerr.KindMediaFetch, "failed to build media request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, syncerr.Wrap(syncerr.KindMediaFetch, "media download failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, syncerr.Newf(syncerr.KindMediaFetch, "media download returned status %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") || strings.Contains(contentType, "text/xml") {
		return nil, syncerr.Newf(syncerr.KindMediaFetch, "media body is %s, not an image", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, syncerr.Wrap(syncerr.KindMediaFetch, "unable to read media body", err)
	}
	return data, nil
}

func validateDate(date string) error {
	if _, err := time.Parse(queryDateLayout, date); err != nil {
		return syncerr.Newf(syncerr.KindSetup, "date %q is not valid, expected yyyy-mm-dd", date)
	}
	return nil
}

func toMapList(raw []any) []map[string]any {
	list := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			list = append(list, m)
		}
	}
	return list
}

package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"contentsync/core/source"
	"contentsync/core/syncerr"

	"go.uber.org/zap"
)

// headerRows is the number of leading worksheet rows that carry column
// titles instead of records.
const headerRows = 1

// IDFunc derives the stable ID from a raw record. Rows for which it
// returns an empty string are skipped.
type IDFunc func(rec source.RawRecord) string

// Client reads records from a spreadsheet worksheet. Each source field is
// bound to a fixed column index; rows below the header become raw records.
type Client struct {
	cfg      Config
	columns  map[string]int
	deriveID IDFunc
	http     *http.Client
	logger   *zap.Logger
}

// NewClient validates the configuration and column binding.
func NewClient(cfg Config, columns map[string]int, deriveID IDFunc, logger *zap.Logger) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, syncerr.New(syncerr.KindSetup, "spreadsheet id is required")
	}
	if cfg.Worksheet == "" {
		return nil, syncerr.New(syncerr.KindSetup, "worksheet name is required")
	}
	if len(columns) == 0 {
		return nil, syncerr.New(syncerr.KindSetup, "column binding is empty")
	}
	for field, idx := range columns {
		if idx < 0 {
			return nil, syncerr.Newf(syncerr.KindSetup, "column index for %q is negative", field)
		}
	}
	if deriveID == nil {
		return nil, syncerr.New(syncerr.KindSetup, "an id derivation function is required")
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &Client{
		cfg:      cfg,
		columns:  columns,
		deriveID: deriveID,
		http:     &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger:   logger,
	}, nil
}

type valuesResponse struct {
	Values [][]string `json:"values"`
}

// GetAllRecords fetches the worksheet and returns its rows keyed by stable
// ID. Rows without a derivable ID are logged and skipped.
func (c *Client) GetAllRecords(ctx context.Context) (map[string]source.RawRecord, error) {
	endpoint := fmt.Sprintf("%s/%s/values/%s",
		c.cfg.BaseURL, c.cfg.SpreadsheetID, url.PathEscape(c.cfg.Worksheet))
	if c.cfg.APIKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, syncerr.Wrap(syncerr.KindRequest, "failed to build worksheet request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, syncerr.Wrap(syncerr.KindRequest, "unable to reach the spreadsheet API", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, syncerr.Newf(syncerr.KindRequest, "spreadsheet API returned status %d", resp.StatusCode)
	}

	var payload valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, syncerr.Wrap(syncerr.KindRequest, "unable to decode worksheet response", err)
	}

	records := make(map[string]source.RawRecord)
	if len(payload.Values) <= headerRows {
		return records, nil
	}
	for i, row := range payload.Values[headerRows:] {
		rec := make(source.RawRecord, len(c.columns)+1)
		for field, idx := range c.columns {
			if idx < len(row) {
				rec[field] = row[idx]
			} else {
				rec[field] = ""
			}
		}
		id := c.deriveID(rec)
		if id == "" {
			if c.logger != nil {
				c.logger.Warn("Skipping worksheet row without a stable id",
					zap.Int("row", i+headerRows+1))
			}
			continue
		}
		rec[source.IDField] = id
		records[id] = rec
	}
	return records, nil
}

// GetRecordByID returns a single worksheet row by stable ID.
func (c *Client) GetRecordByID(ctx context.Context, id string) (source.RawRecord, error) {
	records, err := c.GetAllRecords(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := records[id]
	if !ok {
		return nil, syncerr.Newf(syncerr.KindNotFound, "record is not in the worksheet").WithRecord(id)
	}
	return rec, nil
}

// DownloadMedia fetches the binary behind a drive file reference. The
// reference may be a share URL or a bare file ID.
func (c *Client) DownloadMedia(ctx context.Context, ref string) ([]byte, error) {
	fileID := DriveFileID(ref)
	if fileID == "" {
		return nil, syncerr.Newf(syncerr.KindMediaFetch, "no file id in media reference %q", ref)
	}

	endpoint := fmt.Sprintf("%s/uc?id=%s&export=download", c.cfg.DriveBaseURL, url.QueryEscape(fileID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
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

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, syncerr.Wrap(syncerr.KindMediaFetch, "unable to read media body", err)
	}
	return data, nil
}

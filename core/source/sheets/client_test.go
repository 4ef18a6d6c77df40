package sheets

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"contentsync/core/source"
	"contentsync/core/syncerr"
	"contentsync/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheetColumns() map[string]int {
	return map[string]int{
		"name":          0,
		"google_ads_id": 1,
		"picture":       4,
		"type":          7,
	}
}

func adsID(rec source.RawRecord) string {
	return utils.SafeString(rec["google_ads_id"])
}

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		columns  map[string]int
		deriveID IDFunc
	}{
		{name: "missing spreadsheet id", cfg: Config{Worksheet: "orgs"}, columns: sheetColumns(), deriveID: adsID},
		{name: "missing worksheet", cfg: Config{SpreadsheetID: "s1"}, columns: sheetColumns(), deriveID: adsID},
		{name: "empty columns", cfg: Config{SpreadsheetID: "s1", Worksheet: "orgs"}, columns: nil, deriveID: adsID},
		{name: "negative column", cfg: Config{SpreadsheetID: "s1", Worksheet: "orgs"}, columns: map[string]int{"name": -1}, deriveID: adsID},
		{name: "missing id func", cfg: Config{SpreadsheetID: "s1", Worksheet: "orgs"}, columns: sheetColumns(), deriveID: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg, tt.columns, tt.deriveID, nil)
			require.Error(t, err)
			assert.True(t, syncerr.IsKind(err, syncerr.KindSetup))
		})
	}
}

func TestGetAllRecordsSkipsHeaderAndEmptyIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/s1/values/orgs")
		fmt.Fprint(w, `{"values": [
			["Name", "Ads ID", "", "", "Picture", "", "", "Type"],
			["Concertgebouw", "ads-1", "", "", "pic-url", "", "", "venue"],
			["No ID Org", "", "", "", "", "", "", "venue"],
			["Short Row", "ads-2"]
		]}`)
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL:       server.URL,
		SpreadsheetID: "s1",
		Worksheet:     "orgs",
	}, sheetColumns(), adsID, nil)
	require.NoError(t, err)

	records, err := client.GetAllRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	rec := records["ads-1"]
	assert.Equal(t, "Concertgebouw", rec["name"])
	assert.Equal(t, "pic-url", rec["picture"])
	assert.Equal(t, "ads-1", rec.ID())

	// Columns beyond the row length read as empty, not out of range.
	assert.Equal(t, "", records["ads-2"]["type"])
}

func TestGetRecordByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"values": [["Name"],["Org", "ads-1"]]}`)
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL:       server.URL,
		SpreadsheetID: "s1",
		Worksheet:     "orgs",
	}, sheetColumns(), adsID, nil)
	require.NoError(t, err)

	_, err = client.GetRecordByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, syncerr.IsKind(err, syncerr.KindNotFound))
}

func TestGetAllRecordsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL:       server.URL,
		SpreadsheetID: "s1",
		Worksheet:     "orgs",
	}, sheetColumns(), adsID, nil)
	require.NoError(t, err)

	_, err = client.GetAllRecords(context.Background())
	require.Error(t, err)
	assert.True(t, syncerr.IsKind(err, syncerr.KindRequest))
}

func TestDownloadMedia(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/uc", r.URL.Path)
		assert.Equal(t, "file-1", r.URL.Query().Get("id"))
		assert.Equal(t, "download", r.URL.Query().Get("export"))
		w.Write(payload)
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL:       server.URL,
		SpreadsheetID: "s1",
		Worksheet:     "orgs",
		DriveBaseURL:  server.URL,
	}, sheetColumns(), adsID, nil)
	require.NoError(t, err)

	data, err := client.DownloadMedia(context.Background(), "https://drive.google.com/open?id=file-1&usp=sharing")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestDriveFileID(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "open url", ref: "https://drive.google.com/open?id=abc123", want: "abc123"},
		{name: "open url with extra params", ref: "https://drive.google.com/open?id=abc123&usp=sharing", want: "abc123"},
		{name: "file path url", ref: "https://drive.google.com/file/d/xyz789/view?usp=sharing", want: "xyz789"},
		{name: "schemeless file path url", ref: "drive.google.com/file/d/xyz789/view", want: "xyz789"},
		{name: "file path url without trailing segment", ref: "https://drive.google.com/file/d/xyz789", want: "xyz789"},
		{name: "bare id", ref: "abc123", want: "abc123"},
		{name: "empty", ref: "", want: ""},
		{name: "short path", ref: "https://drive.google.com/", want: ""},
		{name: "path without id segment", ref: "drive.google.com/file/view", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DriveFileID(tt.ref))
		})
	}
}

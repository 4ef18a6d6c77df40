package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"contentsync/core/syncerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validKey = "aaaa-bbbb-cccc-dddd-eeee"

func testConfig(url string) Config {
	return Config{
		Mode: ModeTest,
		Test: Environment{URL: url, APIKey: validKey},
		Prod: Environment{URL: url, APIKey: validKey},
	}
}

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "missing test url",
			cfg: Config{
				Mode: ModeTest,
				Test: Environment{APIKey: validKey},
				Prod: Environment{URL: "https://api.example.org", APIKey: validKey},
			},
		},
		{
			name: "invalid url",
			cfg: Config{
				Mode: ModeTest,
				Test: Environment{URL: "not a url", APIKey: validKey},
				Prod: Environment{URL: "https://api.example.org", APIKey: validKey},
			},
		},
		{
			name: "api key with wrong group count",
			cfg: Config{
				Mode: ModeTest,
				Test: Environment{URL: "https://api.example.org", APIKey: "aaaa-bbbb"},
				Prod: Environment{URL: "https://api.example.org", APIKey: validKey},
			},
		},
		{
			name: "invalid mode",
			cfg: Config{
				Mode: "staging",
				Test: Environment{URL: "https://api.example.org", APIKey: validKey},
				Prod: Environment{URL: "https://api.example.org", APIKey: validKey},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg, nil)
			require.Error(t, err)
			assert.True(t, syncerr.IsKind(err, syncerr.KindSetup))
		})
	}
}

func TestSetMode(t *testing.T) {
	client, err := NewClient(testConfig("https://api.example.org"), nil)
	require.NoError(t, err)

	require.NoError(t, client.SetMode(ModeProd))
	assert.Equal(t, ModeProd, client.Mode())

	err = client.SetMode("staging")
	require.Error(t, err)
	assert.True(t, syncerr.IsKind(err, syncerr.KindSetup))
}

func TestOrganizationList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organizationList", r.URL.Path)
		assert.Equal(t, validKey, r.URL.Query().Get("key"))
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("dateFrom"))
		fmt.Fprint(w, `{
			"status": "ORGANIZATION_FOUND",
			"organizations": [
				{"id": 1, "title": "First"},
				{"id": 2, "title": "Second"}
			]
		}`)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	list, err := client.OrganizationList(context.Background(), "2024-01-01", "2024-12-31")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0]["title"])
}

func TestOrganizationListInvalidDate(t *testing.T) {
	client, err := NewClient(testConfig("https://api.example.org"), nil)
	require.NoError(t, err)

	_, err = client.OrganizationList(context.Background(), "01-01-2024", "2024-12-31")
	require.Error(t, err)
	assert.True(t, syncerr.IsKind(err, syncerr.KindSetup))
}

func TestGetAllRecordsKeysByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"status": "ORGANIZATION_FOUND",
			"organizations": [
				{"id": 41, "title": "First"},
				{"title": "No ID"}
			]
		}`)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	records, err := client.GetAllRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "41", records["41"].ID())
	assert.Equal(t, "First", records["41"]["title"])
}

func TestCallStatusNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ORGANIZATION_NOT_FOUND"}`)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	_, err = client.OrganizationAvailability(context.Background(), "999")
	require.Error(t, err)
	assert.True(t, syncerr.IsKind(err, syncerr.KindNotFound))
}

func TestCallStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ERROR", "error": "backend exploded"}`)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	_, err = client.OrganizationAvailability(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, syncerr.IsKind(err, syncerr.KindRequest))
	assert.Contains(t, err.Error(), "backend exploded")
}

func TestCallMissingStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"organizations": []}`)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	_, err = client.OrganizationList(context.Background(), "2024-01-01", "2024-12-31")
	require.Error(t, err)
	assert.True(t, syncerr.IsKind(err, syncerr.KindRequest))
}

func TestArrangementsByOrganization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/arrangementList", r.URL.Path)
		fmt.Fprint(w, `{
			"status": "ORGANIZATION_FOUND",
			"products": [
				{
					"id": "p1",
					"arrangements": [
						{"title": "Dinner", "organization": {"id": 41}},
						{"title": "Second dinner", "organization": {"id": 41}}
					]
				},
				{
					"id": "p2",
					"arrangements": [
						{"title": "Other", "organization": {"id": 99}}
					]
				}
			]
		}`)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	matches, err := client.ArrangementsByOrganization(context.Background(), "41", "2024-01-01", "2024-12-31")
	require.NoError(t, err)

	// One arrangement per product.
	require.Len(t, matches, 1)
	assert.Equal(t, "Dinner", matches[0]["title"])
	assert.Equal(t, "p1", matches[0]["product_id"])
}

func TestDownloadMediaRejectsHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html>error</html>")
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	_, err = client.DownloadMedia(context.Background(), server.URL+"/img.png")
	require.Error(t, err)
	assert.True(t, syncerr.IsKind(err, syncerr.KindMediaFetch))
}

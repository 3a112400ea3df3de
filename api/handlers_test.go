/*
handlers_test.go - HTTP API tests

TEST STRATEGY:
  Each test runs against a real chi router and an in-memory SQLite
  store, exercising the full request path: routing, URL parameters,
  JSON decoding, engine calls, persistence, and the error envelope.

COVERAGE:
  - Holiday tables by span and by year
  - Single-date lookups (holiday, plain day, malformed input)
  - Rule audit dump
  - Snapshot lifecycle: create, list, fetch, conflict, not-found
*/
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koyomi/holiday-engine/store/sqlite"
)

// ===== TEST HELPERS =====

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(NewRouter(NewHandler(store)))
	t.Cleanup(srv.Close)
	return srv
}

func doGET(t *testing.T, srv *httptest.Server, path string, out any) *http.Response {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func doPOST(t *testing.T, srv *httptest.Server, path string, body, out any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// ===== HOLIDAY ENDPOINTS =====

func TestListHolidaysByYear(t *testing.T) {
	// GIVEN a running server
	srv := newTestServer(t)

	// WHEN requesting the table for 2021
	var table TableResponse
	resp := doGET(t, srv, "/api/holidays/year/2021", &table)

	// THEN the Olympic-year calendar comes back complete
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2021-01-01", table.MinDate)
	assert.Equal(t, "2021-12-31", table.MaxDate)
	assert.Equal(t, 17, table.Count)
	require.Len(t, table.Holidays, 17)

	byDate := make(map[string]string, len(table.Holidays))
	for _, h := range table.Holidays {
		byDate[h.Date] = h.Name
	}
	assert.Equal(t, "海の日", byDate["2021-07-22"])
	assert.Equal(t, "スポーツの日", byDate["2021-07-23"])
	assert.Equal(t, "山の日", byDate["2021-08-08"])
	assert.Equal(t, "振替休日", byDate["2021-08-09"])
}

func TestListHolidaysSpan(t *testing.T) {
	srv := newTestServer(t)

	// WHEN requesting an explicit span across a year boundary
	var table TableResponse
	resp := doGET(t, srv, "/api/holidays?from=2022-12-01&to=2023-01-31", &table)

	// THEN both years contribute, including the carried-over substitute
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	byDate := make(map[string]string, len(table.Holidays))
	for _, h := range table.Holidays {
		byDate[h.Date] = h.Name
	}
	assert.Equal(t, "元日", byDate["2023-01-01"])
	assert.Equal(t, "振替休日", byDate["2023-01-02"])
	assert.Equal(t, "成人の日", byDate["2023-01-09"])
	assert.NotContains(t, byDate, "2022-11-23")
}

func TestListHolidaysValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		path string
	}{
		{"malformed from", "/api/holidays?from=2020/01/01"},
		{"inverted span", "/api/holidays?from=2021-01-01&to=2020-01-01"},
		{"before the act", "/api/holidays?from=1947-01-01&to=1947-12-31"},
		{"beyond the equinox tables", "/api/holidays?from=2151-01-01&to=2151-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errResp ErrorResponse
			resp := doGET(t, srv, tt.path, &errResp)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestCheckDate(t *testing.T) {
	srv := newTestServer(t)

	t.Run("holiday", func(t *testing.T) {
		var check DateCheckResponse
		resp := doGET(t, srv, "/api/dates/2020-07-24", &check)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, check.Holiday)
		assert.Equal(t, "スポーツの日", check.Name)
	})

	t.Run("derived holiday", func(t *testing.T) {
		var check DateCheckResponse
		resp := doGET(t, srv, "/api/dates/2023-01-02", &check)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, check.Holiday)
		assert.Equal(t, "振替休日", check.Name)
	})

	t.Run("ordinary day", func(t *testing.T) {
		var check DateCheckResponse
		resp := doGET(t, srv, "/api/dates/2020-07-27", &check)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, check.Holiday)
		assert.Empty(t, check.Name)
	})

	t.Run("malformed date", func(t *testing.T) {
		resp := doGET(t, srv, "/api/dates/not-a-date", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// ===== RULE AUDIT =====

func TestListRules(t *testing.T) {
	srv := newTestServer(t)

	var rules []RuleDTO
	resp := doGET(t, srv, "/api/rules", &rules)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, rules)

	// Every row is fully described for its kind.
	versionsByIdentity := make(map[string]int)
	for _, r := range rules {
		versionsByIdentity[r.Identity]++
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.EffectiveFrom)
		switch r.Kind {
		case "fixed":
			assert.NotZero(t, r.Month, "fixed rule %s has no month", r.Identity)
			assert.NotZero(t, r.Day, "fixed rule %s has no day", r.Identity)
		case "nth_weekday":
			assert.NotEmpty(t, r.Weekday, "nth_weekday rule %s has no weekday", r.Identity)
			assert.NotZero(t, r.Ordinal, "nth_weekday rule %s has no ordinal", r.Identity)
		case "equinox":
			assert.NotEmpty(t, r.Season, "equinox rule %s has no season", r.Identity)
		default:
			t.Fatalf("unexpected kind %q", r.Kind)
		}
	}

	// A few amendment histories, by version count.
	assert.Equal(t, 5, versionsByIdentity["marine-day"])
	assert.Equal(t, 3, versionsByIdentity["emperors-birthday"])
	assert.Equal(t, 1, versionsByIdentity["vernal-equinox-day"])
}

// ===== SNAPSHOTS =====

func TestSnapshotLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// WHEN persisting a computed year
	var created SnapshotDTO
	resp := doPOST(t, srv, "/api/snapshots", CreateSnapshotRequest{
		ID:      "reiwa-2",
		MinDate: "2020-01-01",
		MaxDate: "2020-12-31",
	}, &created)

	// THEN the record reflects the computation
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "reiwa-2", created.ID)
	assert.Equal(t, "2020-01-01", created.MinDate)
	assert.Equal(t, "2020-12-31", created.MaxDate)
	assert.Equal(t, 18, created.HolidayCount)
	assert.NotEmpty(t, created.CreatedAt)

	// AND it shows up in the listing
	var listed []SnapshotDTO
	resp = doGET(t, srv, "/api/snapshots", &listed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, listed, 1)
	assert.Equal(t, "reiwa-2", listed[0].ID)

	// AND it can be fetched with its entries
	var detail SnapshotDetailResponse
	resp = doGET(t, srv, "/api/snapshots/reiwa-2", &detail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "reiwa-2", detail.Snapshot.ID)
	require.Len(t, detail.Holidays, 18)
	assert.Equal(t, "2020-01-01", detail.Holidays[0].Date)
	assert.Equal(t, "元日", detail.Holidays[0].Name)
}

func TestCreateSnapshotConflict(t *testing.T) {
	srv := newTestServer(t)

	req := CreateSnapshotRequest{ID: "dup", MinDate: "2019-01-01", MaxDate: "2019-12-31"}
	resp := doPOST(t, srv, "/api/snapshots", req, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// WHEN reusing the id
	resp = doPOST(t, srv, "/api/snapshots", req, nil)

	// THEN the second write is rejected, the first survives
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var listed []SnapshotDTO
	doGET(t, srv, "/api/snapshots", &listed)
	assert.Len(t, listed, 1)
}

func TestCreateSnapshotGeneratedID(t *testing.T) {
	srv := newTestServer(t)

	var created SnapshotDTO
	resp := doPOST(t, srv, "/api/snapshots", CreateSnapshotRequest{
		MinDate: "2026-01-01",
		MaxDate: "2026-12-31",
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("snap-%s-%s", "2026-01-01", "2026-12-31"), created.ID)
}

func TestCreateSnapshotValidation(t *testing.T) {
	srv := newTestServer(t)

	t.Run("inverted span", func(t *testing.T) {
		resp := doPOST(t, srv, "/api/snapshots", CreateSnapshotRequest{
			MinDate: "2021-01-01", MaxDate: "2020-01-01",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/snapshots", "application/json",
			bytes.NewReader([]byte("{not json")))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetSnapshotNotFound(t *testing.T) {
	srv := newTestServer(t)

	var errResp ErrorResponse
	resp := doGET(t, srv, "/api/snapshots/nope", &errResp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "snapshot not found", errResp.Error)
}

package influxdb_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/nerrad567/speedportmon/internal/infrastructure/config"
	"github.com/nerrad567/speedportmon/internal/infrastructure/influxdb"
	"github.com/nerrad567/speedportmon/internal/speedport"
)

// fakeInflux records requests made against the InfluxDB v2 HTTP API.
type fakeInflux struct {
	srv         *httptest.Server
	writeStatus int

	mu       sync.Mutex
	requests int
	bodies   []string
	queries  []map[string]string
	auth     []string
}

func newFakeInflux(t *testing.T, writeStatus int) *fakeInflux {
	t.Helper()
	f := &fakeInflux{writeStatus: writeStatus}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeInflux) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests++
	f.mu.Unlock()

	switch r.URL.Path {
	case "/ping", "/health":
		w.WriteHeader(http.StatusNoContent)
	case "/api/v2/write":
		f.mu.Lock()
		f.bodies = append(f.bodies, string(body))
		f.queries = append(f.queries, map[string]string{
			"org":    r.URL.Query().Get("org"),
			"bucket": r.URL.Query().Get("bucket"),
		})
		f.auth = append(f.auth, r.Header.Get("Authorization"))
		f.mu.Unlock()

		if f.writeStatus != http.StatusNoContent {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.writeStatus)
			_, _ = w.Write([]byte(`{"code":"invalid","message":"rejected by test server"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeInflux) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

// testConfig returns a complete configuration pointing at url.
func testConfig(url string) config.InfluxDBConfig {
	return config.InfluxDBConfig{
		URL:    url,
		Token:  "test-token",
		Org:    "home",
		Bucket: "speedport",
	}
}

func int64p(v int64) *int64 { return &v }
func boolp(v bool) *bool    { return &v }

// =============================================================================
// Validation Tests
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.InfluxDBConfig
		wantErr     bool
		wantMissing []string
	}{
		{
			name:    "complete",
			cfg:     testConfig("http://influx:8086"),
			wantErr: false,
		},
		{
			name:        "missing token",
			cfg:         config.InfluxDBConfig{URL: "http://influx:8086", Org: "home"},
			wantErr:     true,
			wantMissing: []string{"INFLUX_TOKEN"},
		},
		{
			name:        "missing everything",
			cfg:         config.InfluxDBConfig{Bucket: "speedport"},
			wantErr:     true,
			wantMissing: []string{"INFLUX_URL", "INFLUX_TOKEN", "INFLUX_ORG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := influxdb.Validate(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, influxdb.ErrConfig) {
				t.Errorf("Validate() error = %v, want ErrConfig", err)
			}
			for _, name := range tt.wantMissing {
				if !strings.Contains(err.Error(), name) {
					t.Errorf("Validate() error %q should mention %s", err, name)
				}
			}
		})
	}
}

// =============================================================================
// Point Tests
// =============================================================================

func TestWriter_Bucket(t *testing.T) {
	cfg := testConfig("http://influx:8086")
	cfg.Bucket = "dsl"

	if got := influxdb.NewWriter(cfg).Bucket(); got != "dsl" {
		t.Errorf("Bucket() = %q, want %q", got, "dsl")
	}
}

func TestFields_Defaults(t *testing.T) {
	fields := influxdb.Fields(speedport.Snapshot{})

	want := map[string]interface{}{
		"downstream": int64(0),
		"upstream":   int64(0),
		"link":       false,
		"online":     false,
		"connected":  false,
	}
	if len(fields) != len(want) {
		t.Fatalf("Fields() has %d entries, want %d", len(fields), len(want))
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("Fields()[%q] = %#v, want %#v", k, fields[k], v)
		}
	}
}

func TestNewPoint_PartialSnapshot(t *testing.T) {
	snap := speedport.Snapshot{Downstream: int64p(50000), Online: boolp(true)}

	point := influxdb.NewPoint(snap)

	if point.Name() != "dsl_status" {
		t.Errorf("Name() = %q, want dsl_status", point.Name())
	}

	tags := point.TagList()
	if len(tags) != 1 || tags[0].Key != "host" || tags[0].Value != "speedport" {
		t.Errorf("TagList() = %v, want host=speedport", tags)
	}

	got := make(map[string]interface{})
	for _, f := range point.FieldList() {
		got[f.Key] = f.Value
	}
	want := map[string]interface{}{
		"downstream": int64(50000),
		"upstream":   int64(0),
		"link":       false,
		"online":     true,
		"connected":  false,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("field %q = %#v, want %#v", k, got[k], v)
		}
	}

	if !point.Time().IsZero() {
		t.Errorf("Time() = %v, want zero so the server assigns it", point.Time())
	}
}

// =============================================================================
// Write Tests
// =============================================================================

func TestWrite_Success(t *testing.T) {
	f := newFakeInflux(t, http.StatusNoContent)
	w := influxdb.NewWriter(testConfig(f.srv.URL))

	snap := speedport.Snapshot{Downstream: int64p(50000), Online: boolp(true)}
	if err := w.Write(context.Background(), snap); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.bodies) != 1 {
		t.Fatalf("got %d write requests, want 1", len(f.bodies))
	}
	if f.queries[0]["org"] != "home" || f.queries[0]["bucket"] != "speedport" {
		t.Errorf("write query = %v, want org=home bucket=speedport", f.queries[0])
	}
	if f.auth[0] != "Token test-token" {
		t.Errorf("Authorization = %q, want %q", f.auth[0], "Token test-token")
	}

	line := strings.TrimSpace(f.bodies[0])
	for _, want := range []string{
		"dsl_status,host=speedport ",
		"downstream=50000i",
		"upstream=0i",
		"link=f",
		"online=t",
		"connected=f",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("line protocol %q missing %q", line, want)
		}
	}
}

func TestWrite_EmptySnapshotWritesDefaults(t *testing.T) {
	f := newFakeInflux(t, http.StatusNoContent)
	w := influxdb.NewWriter(testConfig(f.srv.URL))

	if err := w.Write(context.Background(), speedport.Snapshot{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.bodies) != 1 {
		t.Fatalf("got %d write requests, want 1", len(f.bodies))
	}
	for _, want := range []string{"downstream=0i", "upstream=0i", "link=f", "online=f", "connected=f"} {
		if !strings.Contains(f.bodies[0], want) {
			t.Errorf("line protocol %q missing %q", f.bodies[0], want)
		}
	}
}

func TestWrite_MissingConfigMakesNoRequest(t *testing.T) {
	f := newFakeInflux(t, http.StatusNoContent)
	cfg := testConfig(f.srv.URL)
	cfg.Token = ""

	err := influxdb.NewWriter(cfg).Write(context.Background(), speedport.Snapshot{})
	if !errors.Is(err, influxdb.ErrConfig) {
		t.Fatalf("Write() error = %v, want ErrConfig", err)
	}
	if n := f.requestCount(); n != 0 {
		t.Errorf("server saw %d requests, want 0", n)
	}
}

func TestWrite_ServerRejects(t *testing.T) {
	f := newFakeInflux(t, http.StatusBadRequest)
	w := influxdb.NewWriter(testConfig(f.srv.URL))

	err := w.Write(context.Background(), speedport.Snapshot{})
	if !errors.Is(err, influxdb.ErrWriteFailed) {
		t.Errorf("Write() error = %v, want ErrWriteFailed", err)
	}
}

func TestWrite_Unreachable(t *testing.T) {
	f := newFakeInflux(t, http.StatusNoContent)
	url := f.srv.URL
	f.srv.Close()

	err := influxdb.NewWriter(testConfig(url)).Write(context.Background(), speedport.Snapshot{})
	if !errors.Is(err, influxdb.ErrWriteFailed) {
		t.Errorf("Write() error = %v, want ErrWriteFailed", err)
	}
}

// =============================================================================
// Health Check Tests
// =============================================================================

func TestHealthCheck(t *testing.T) {
	f := newFakeInflux(t, http.StatusNoContent)
	w := influxdb.NewWriter(testConfig(f.srv.URL))

	if err := w.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestHealthCheck_MissingConfig(t *testing.T) {
	w := influxdb.NewWriter(config.InfluxDBConfig{})

	if err := w.HealthCheck(context.Background()); !errors.Is(err, influxdb.ErrConfig) {
		t.Errorf("HealthCheck() error = %v, want ErrConfig", err)
	}
}

func TestHealthCheck_Unreachable(t *testing.T) {
	f := newFakeInflux(t, http.StatusNoContent)
	url := f.srv.URL
	f.srv.Close()

	err := influxdb.NewWriter(testConfig(url)).HealthCheck(context.Background())
	if !errors.Is(err, influxdb.ErrConnectionFailed) {
		t.Errorf("HealthCheck() error = %v, want ErrConnectionFailed", err)
	}
}

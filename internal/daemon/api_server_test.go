package daemon

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"testing"

	"callsheet/internal/api"
	"callsheet/internal/logging"
	"callsheet/internal/pricing"
	"callsheet/internal/testsupport"
)

func startAPIDaemon(t *testing.T, opts ...testsupport.ConfigOption) *Daemon {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	st := testsupport.MustOpenStore(t, cfg)

	d, err := New(context.Background(), cfg, st, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(d.Stop)
	return d
}

func TestHealthEndpointSkipsAuth(t *testing.T) {
	d := startAPIDaemon(t, testsupport.WithAPIToken("secret"))

	resp, err := http.Get("http://" + d.httpAPI.addr() + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Status string `json:"status"`
		PID    int    `json:"pid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode health body: %v", err)
	}
	if body.Status != "ok" || body.PID != os.Getpid() {
		t.Fatalf("unexpected health body: %+v", body)
	}
}

func TestStatusEndpointRequiresBearerToken(t *testing.T) {
	d := startAPIDaemon(t, testsupport.WithAPIToken("secret"))
	url := "http://" + d.httpAPI.addr() + "/api/status"

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET without token: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", resp.StatusCode)
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET with wrong token: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status with wrong token = %d, want 401", resp.StatusCode)
	}

	req.Header.Set("Authorization", "Bearer secret")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET with token: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status with token = %d, want 200", resp.StatusCode)
	}
	var status api.DaemonStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status body: %v", err)
	}
	if status.PID != os.Getpid() {
		t.Fatalf("status PID = %d, want %d", status.PID, os.Getpid())
	}
}

func TestStatusEndpointOpenWithoutToken(t *testing.T) {
	d := startAPIDaemon(t)

	resp, err := http.Get("http://" + d.httpAPI.addr() + "/api/status")
	if err != nil {
		t.Fatalf("GET /api/status: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status without configured token = %d, want 200", resp.StatusCode)
	}
}

func TestPriceDeliverableEndpoint(t *testing.T) {
	d := startAPIDaemon(t)
	testsupport.SeedRates(t, d.store, map[string]float64{
		"edit_basic_60":      1000,
		"colour_standard_60": 200,
	})

	payload := `{"videoLengthSeconds":55,"editType":"basic","colourGrading":"standard","subtitles":"none","rush":"none"}`
	resp, err := http.Post("http://"+d.httpAPI.addr()+"/api/price/deliverable", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("POST /api/price/deliverable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("price status = %d, want 200", resp.StatusCode)
	}
	var quote api.Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if quote.Cost != 1200 {
		t.Fatalf("quote cost = %v, want 1200", quote.Cost)
	}
	if quote.Bracket != pricing.Bracket60 {
		t.Fatalf("quote bracket = %q, want %q", quote.Bracket, pricing.Bracket60)
	}
}

func TestUploadEndpointsRejectUnknownJob(t *testing.T) {
	d := startAPIDaemon(t)

	resp, err := http.Get("http://" + d.httpAPI.addr() + "/api/uploads/deadbeef")
	if err != nil {
		t.Fatalf("GET unknown upload: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown upload status = %d, want 404", resp.StatusCode)
	}
}

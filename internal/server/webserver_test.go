package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/tomkeaney/inbreeding-parental-care/internal/figures"
	"github.com/tomkeaney/inbreeding-parental-care/internal/render"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewWebServer(t *testing.T) {
	config := WebServerConfig{
		Address: ":0",
		Figures: figures.All(),
		Render:  render.DefaultOptions(),
	}

	server := NewWebServer(config)

	if server == nil {
		t.Fatal("NewWebServer returned nil")
	}

	if server.address != ":0" {
		t.Errorf("WebServer address not set correctly: got %s, want :0", server.address)
	}

	if len(server.byName) != len(figures.All()) {
		t.Errorf("WebServer indexed %d figures, want %d", len(server.byName), len(figures.All()))
	}

	if server.catalog != nil {
		t.Error("WebServer catalog should be nil when not configured")
	}
}

func TestWebServer_StatusHandler(t *testing.T) {
	server := NewWebServer(WebServerConfig{
		Address: ":0",
		Figures: figures.All(),
		Render:  render.DefaultOptions(),
	})

	// Create a request to the status endpoint
	req, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()

	// Call the handler through the mux
	mux := server.setupRoutes()
	mux.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("Status handler returned wrong status code: got %v want %v",
			status, http.StatusOK)
	}

	body := rr.Body.String()

	if !strings.Contains(body, "Inbreeding and parental care") {
		t.Error("Response should contain the page heading")
	}

	if !strings.Contains(body, "Offspring fitness under parental care") {
		t.Error("Response should list the figure titles")
	}

	if !strings.Contains(body, "/figures/malecare") {
		t.Error("Response should link to the figure pages")
	}

	// No catalog was configured, so the run history degrades gracefully.
	if !strings.Contains(body, "Run catalog not configured") {
		t.Error("Response should note the missing run catalog")
	}
}

func TestWebServer_StatusHandlerUnknownPath(t *testing.T) {
	server := NewWebServer(WebServerConfig{
		Address: ":0",
		Figures: figures.All(),
		Render:  render.DefaultOptions(),
	})

	req := httptest.NewRequest(http.MethodGet, "/no-such-page", nil)
	rr := httptest.NewRecorder()

	mux := server.setupRoutes()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown path, got %d", rr.Code)
	}
}

func TestWebServer_HealthHandler(t *testing.T) {
	server := NewWebServer(WebServerConfig{
		Address: ":0",
		Figures: figures.All(),
		Render:  render.DefaultOptions(),
	})

	// Create a request to the health endpoint
	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()

	mux := server.setupRoutes()
	mux.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("Health handler returned wrong status code: got %v want %v",
			status, http.StatusOK)
	}

	expected := "application/json"
	if ctype := rr.Header().Get("Content-Type"); ctype != expected {
		t.Errorf("Health handler returned wrong content type: got %v want %v",
			ctype, expected)
	}

	body := rr.Body.String()

	if !strings.Contains(body, `"status": "ok"`) {
		t.Error("Response should contain status: ok")
	}

	if !strings.Contains(body, `"service": "inbreeding-parental-care"`) {
		t.Error("Response should contain the service name")
	}
}

func TestWebServer_StartStop(t *testing.T) {
	server := NewWebServer(WebServerConfig{
		Address: ":0", // Use port 0 to get an available port
		Figures: figures.All(),
		Render:  render.DefaultOptions(),
	})

	// Start server with context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		err := server.Start(ctx)
		if err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Give the server time to start
	time.Sleep(50 * time.Millisecond)

	// Cancel the context to stop the server
	cancel()

	// Wait a bit for the server to stop
	time.Sleep(50 * time.Millisecond)

	// Check if there were any startup errors
	select {
	case err := <-errChan:
		t.Fatalf("Server start failed: %v", err)
	default:
		// No error, which is what we expect
	}
}

func BenchmarkWebServer_StatusHandler(b *testing.B) {
	server := NewWebServer(WebServerConfig{
		Address: ":0",
		Figures: figures.All(),
		Render:  render.DefaultOptions(),
	})

	req, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		b.Fatal(err)
	}

	mux := server.setupRoutes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
	}
}

func BenchmarkWebServer_HealthHandler(b *testing.B) {
	server := NewWebServer(WebServerConfig{
		Address: ":0",
		Figures: figures.All(),
		Render:  render.DefaultOptions(),
	})

	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		b.Fatal(err)
	}

	mux := server.setupRoutes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
	}
}

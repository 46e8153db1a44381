package connection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewHTTPClient(t *testing.T) {
	tests := []struct {
		name       string
		server     string
		wantPrefix string
	}{
		{"with http prefix", "http://localhost:4000", "http://localhost:4000"},
		{"with https prefix", "https://localhost:4000", "https://localhost:4000"},
		{"without prefix", "localhost:4000", "http://localhost:4000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewHTTPClient(tt.server)
			if client.BaseURL() != tt.wantPrefix {
				t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), tt.wantPrefix)
			}
		})
	}
}

func TestHTTPClient_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/v1/set" {
			t.Errorf("path = %q, want /v1/set", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	resp, err := client.Post(context.Background(), "/v1/set", map[string]string{"key": "k", "value": "v"})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestParseResponse_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotImplemented)
		w.Write([]byte(`{"message":"engine does not support stats"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	resp, err := client.Get(context.Background(), "/v1/stats")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	err = ParseResponse(resp, nil)
	if err == nil {
		t.Fatal("ParseResponse() expected error for 501 status")
	}
	if err.Error() != "engine does not support stats" {
		t.Errorf("ParseResponse() error = %q, want %q", err.Error(), "engine does not support stats")
	}
}

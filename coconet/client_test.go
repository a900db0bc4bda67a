package coconet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/harmonize", func(w http.ResponseWriter, r *http.Request) {
		var req HarmonizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		resp := HarmonizeResponse{Voices: make([][]int, req.NumVoices-1)}
		for v := range resp.Voices {
			voice := make([]int, len(req.Melody))
			for i, p := range req.Melody {
				voice[i] = p - 12*(v+1)
			}
			resp.Voices[v] = voice
		}
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Status{Ready: true, Model: "coconet-64"})
	})
	return httptest.NewServer(mux)
}

func addrOf(s *httptest.Server) string {
	return strings.TrimPrefix(s.URL, "http://")
}

func TestClientHarmonize(t *testing.T) {
	server := testServer(t)
	defer server.Close()

	client := NewClient(ClientConfig{Addr: addrOf(server)})
	resp, err := client.Harmonize(context.Background(), HarmonizeRequest{
		Melody:    []int{60, 62, 64},
		NumVoices: 4,
	})
	if err != nil {
		t.Fatalf("harmonize failed: %s", err)
	}
	if len(resp.Voices) != 3 {
		t.Fatalf("got %d voices, want 3", len(resp.Voices))
	}
	if resp.Voices[0][0] != 48 || resp.Voices[2][2] != 28 {
		t.Errorf("unexpected harmony pitches: %v", resp.Voices)
	}
}

func TestClientStatus(t *testing.T) {
	server := testServer(t)
	defer server.Close()

	client := NewClient(ClientConfig{Addr: addrOf(server)})
	status, err := client.Status(context.Background())
	if err != nil {
		t.Fatalf("status failed: %s", err)
	}
	if !status.Ready || status.Model != "coconet-64" {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestClientUnavailable(t *testing.T) {
	// a closed server refuses connections
	server := testServer(t)
	addr := addrOf(server)
	server.Close()

	client := NewClient(ClientConfig{Addr: addr})
	_, err := client.Harmonize(context.Background(), HarmonizeRequest{
		Melody:    []int{60},
		NumVoices: 2,
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, err := client.Status(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from status, got %v", err)
	}
}

func TestClientRejectsMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// wrong voice count for the request
		json.NewEncoder(w).Encode(HarmonizeResponse{Voices: [][]int{{50}}})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Addr: addrOf(server)})
	_, err := client.Harmonize(context.Background(), HarmonizeRequest{
		Melody:    []int{60, 62},
		NumVoices: 4,
	})
	if err == nil {
		t.Fatalf("expected a validation error")
	}
	if errors.Is(err, ErrUnavailable) {
		t.Errorf("malformed response should not map to ErrUnavailable")
	}
}

func TestClientRejectsEmptyMelody(t *testing.T) {
	client := NewClient(ClientConfig{Addr: "127.0.0.1:1"})
	if _, err := client.Harmonize(context.Background(), HarmonizeRequest{NumVoices: 4}); err == nil {
		t.Fatalf("empty melody should fail before any request")
	}
}

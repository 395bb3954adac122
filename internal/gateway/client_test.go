package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinicsite-backend/internal/builder"
	"clinicsite-backend/internal/models"
)

func testServer(t *testing.T) (*httptest.Server, *int64) {
	t.Helper()

	revision := int64(1)
	document, err := json.Marshal(builder.NewSite(7))
	if err != nil {
		t.Fatalf("failed to marshal site: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/sites/7", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(models.SiteResponse{
				ClinicID: 7,
				Revision: revision,
				Document: document,
			})
		case http.MethodPut:
			var req models.SaveSiteRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if req.Revision != revision {
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(map[string]interface{}{"revision": revision})
				return
			}
			document = req.Document
			revision++
			json.NewEncoder(w).Encode(map[string]int64{"revision": revision})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/sites/7/publish", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &revision
}

func TestClientLoadSaveRoundTrip(t *testing.T) {
	server, _ := testServer(t)
	client := NewClient(server.URL, 7, "token")
	ctx := context.Background()

	site, revision, err := client.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if revision != 1 {
		t.Fatalf("expected revision 1, got %d", revision)
	}
	if site.HomePage() == nil {
		t.Fatal("loaded site missing home page")
	}

	newRevision, err := client.Save(ctx, site, revision)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if newRevision != 2 {
		t.Fatalf("expected revision 2, got %d", newRevision)
	}
}

func TestClientSaveConflict(t *testing.T) {
	server, serverRevision := testServer(t)
	client := NewClient(server.URL, 7, "token")
	ctx := context.Background()

	site, revision, err := client.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	*serverRevision = revision + 5 // another session saved in the meantime

	if _, err := client.Save(ctx, site, revision); !errors.Is(err, builder.ErrSaveConflict) {
		t.Fatalf("expected ErrSaveConflict, got %v", err)
	}
}

func TestClientPublish(t *testing.T) {
	server, _ := testServer(t)
	client := NewClient(server.URL, 7, "token")

	if err := client.Publish(context.Background()); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 7, "secret")
	client.Publish(context.Background())

	if authHeader != "Bearer secret" {
		t.Fatalf("expected bearer token, got %q", authHeader)
	}
}

func TestSessionAgainstHTTPGateway(t *testing.T) {
	server, _ := testServer(t)
	client := NewClient(server.URL, 7, "token")

	session := builder.NewSession(7, client, builder.SessionConfig{})
	ctx := context.Background()

	if err := session.Load(ctx); err != nil {
		t.Fatalf("session load failed: %v", err)
	}
	if err := session.Save(ctx); err != nil {
		t.Fatalf("session save failed: %v", err)
	}
	if session.Revision() != 2 {
		t.Fatalf("expected revision 2, got %d", session.Revision())
	}
	if err := session.Publish(ctx); err != nil {
		t.Fatalf("session publish failed: %v", err)
	}
}

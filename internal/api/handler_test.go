package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vouchdev/vouch/internal/archive"
	"github.com/vouchdev/vouch/internal/leaderboard"
	"github.com/vouchdev/vouch/pkg/analyze"
	"github.com/vouchdev/vouch/pkg/pipeline"
	"github.com/vouchdev/vouch/pkg/scoring"
)

type fakeStore struct {
	entries []leaderboard.Entry
	failAdd bool
}

func (s *fakeStore) Add(ctx context.Context, e *leaderboard.Entry) (*leaderboard.Entry, error) {
	if s.failAdd {
		return nil, context.DeadlineExceeded
	}
	e.ID = "entry-1"
	s.entries = append(s.entries, *e)
	return e, nil
}

func (s *fakeStore) List(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	return s.entries[:limit], nil
}

func (s *fakeStore) GetAwards(ctx context.Context) (*leaderboard.Awards, error) {
	awards := &leaderboard.Awards{}
	if len(s.entries) > 0 {
		awards.WorstOverall = &s.entries[0]
	}
	return awards, nil
}

func sampleSubmission(t *testing.T) []byte {
	t.Helper()
	trust := scoring.NewTrustScore(0)
	trust.AddComponent(scoring.Component{Name: "Quality", Score: 10, Weight: 1})
	result := &pipeline.Result{
		ScanID:   "scan-1",
		Quality:  &analyze.QualityReport{Score: 10},
		Security: &analyze.SecurityReport{CriticalCount: 2, Score: 50},
		Trust:    trust,
	}
	body, err := json.Marshal(SubmitRequest{
		RepoURL:  "https://github.com/acme/junk",
		RepoName: "acme/junk",
		Result:   result,
	})
	if err != nil {
		t.Fatalf("marshal submission: %v", err)
	}
	return body
}

func newTestServer(t *testing.T, store Store, storage archive.StorageClient, secret []byte) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	NewHandler(store, storage, secret).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSubmitAndList(t *testing.T) {
	store := &fakeStore{}
	storage := archive.NewLocalStorage(t.TempDir())
	srv := newTestServer(t, store, storage, nil)

	resp, err := http.Post(srv.URL+"/api/v1/shame", "application/json", bytes.NewReader(sampleSubmission(t)))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var entry leaderboard.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry.Category != leaderboard.CategorySecurityNightmare {
		t.Errorf("category = %s, want %s", entry.Category, leaderboard.CategorySecurityNightmare)
	}

	// The submitted result is archived under its scan ID.
	if _, err := storage.GetResult(context.Background(), "scan-1"); err != nil {
		t.Errorf("archived result missing: %v", err)
	}

	listResp, err := http.Get(srv.URL + "/api/v1/shame?limit=5")
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	defer listResp.Body.Close()
	var entries []leaderboard.Entry
	if err := json.NewDecoder(listResp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want 1", len(entries))
	}
}

func TestSubmitRejectsBadSignature(t *testing.T) {
	secret := []byte("leaderboard-secret")
	srv := newTestServer(t, &fakeStore{}, nil, secret)
	body := sampleSubmission(t)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/shame", bytes.NewReader(body))
	req.Header.Set("X-Vouch-Signature", "sha256=deadbeef")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestSubmitAcceptsValidSignature(t *testing.T) {
	secret := []byte("leaderboard-secret")
	srv := newTestServer(t, &fakeStore{}, nil, secret)
	body := sampleSubmission(t)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/shame", bytes.NewReader(body))
	req.Header.Set("X-Vouch-Signature", SignPayload(body, secret))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want 201", resp.StatusCode)
	}
}

func TestSubmitRejectsIncompletePayload(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, nil, nil)

	resp, err := http.Post(srv.URL+"/api/v1/shame", "application/json",
		strings.NewReader(`{"repo_url": "https://github.com/acme/junk"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestListRejectsBadLimit(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, nil, nil)

	resp, err := http.Get(srv.URL + "/api/v1/shame?limit=9000")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetBadge(t *testing.T) {
	storage := archive.NewLocalStorage(t.TempDir())
	if err := storage.PutBadge(context.Background(), "scan-9", []byte("badge-markdown")); err != nil {
		t.Fatalf("put badge: %v", err)
	}
	srv := newTestServer(t, &fakeStore{}, storage, nil)

	resp, err := http.Get(srv.URL + "/api/v1/badges/scan-9")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	missing, err := http.Get(srv.URL + "/api/v1/badges/unknown")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	defer missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", missing.StatusCode)
	}
}

func TestVerifySignature(t *testing.T) {
	secret := []byte("s3cret")
	payload := []byte(`{"repo_url":"x"}`)

	if err := VerifySignature(payload, SignPayload(payload, secret), secret); err != nil {
		t.Errorf("valid signature rejected: %v", err)
	}
	if err := VerifySignature(payload, "bogus", secret); err == nil {
		t.Error("malformed signature accepted")
	}
	if err := VerifySignature(payload, SignPayload(payload, []byte("other")), secret); err == nil {
		t.Error("wrong-secret signature accepted")
	}
}

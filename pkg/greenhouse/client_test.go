package greenhouse

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New("test-key", "4000", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := New("  ", "4000"); err == nil {
		t.Fatal("expected error for blank api key")
	}
}

func TestListJobs_SendsBasicAuth(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]Job{{ID: 42, Name: "Staff Engineer", Status: "open"}})
	}))

	jobs, err := client.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != 42 {
		t.Fatalf("unexpected jobs: %#v", jobs)
	}

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("test-key:"))
	if gotAuth != want {
		t.Fatalf("auth header mismatch: want %q, got %q", want, gotAuth)
	}
}

func TestGetJob_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.GetJob(context.Background(), "999")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestListJobPosts_RequestsFullContent(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		_ = json.NewEncoder(w).Encode([]JobPost{{ID: 1, Active: true, Content: "<p>hi</p>"}})
	}))

	posts, err := client.ListJobPosts(context.Background(), "42", true)
	if err != nil {
		t.Fatalf("list job posts: %v", err)
	}
	if len(posts) != 1 || !posts[0].Active {
		t.Fatalf("unexpected posts: %#v", posts)
	}
	if gotPath != "/jobs/42/job_posts?full_content=true" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
}

func TestCreateCandidate_SendsOnBehalfOfAndBody(t *testing.T) {
	var (
		gotOnBehalfOf string
		gotBody       CandidateRequest
	)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOnBehalfOf = r.Header.Get("On-Behalf-Of")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Candidate{
			ID:           7,
			Applications: []CandidateApplication{{ID: 11}},
		})
	}))

	request := CandidateRequest{
		FirstName:      "Jane",
		LastName:       "Doe",
		EmailAddresses: []EmailAddress{{Value: "jane@x.com", Type: "personal"}},
		Applications:   []ApplicationEntry{{JobID: 42}},
		Attachments:    []Attachment{},
	}

	created, err := client.CreateCandidate(context.Background(), request)
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	if created.ID != 7 || len(created.Applications) != 1 || created.Applications[0].ID != 11 {
		t.Fatalf("unexpected candidate: %#v", created)
	}
	if gotOnBehalfOf != "4000" {
		t.Fatalf("on-behalf-of mismatch: got %q", gotOnBehalfOf)
	}
	if diff := cmp.Diff(request, gotBody); diff != "" {
		t.Fatalf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateCandidate_RequiresOnBehalfOf(t *testing.T) {
	client, err := New("test-key", "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.CreateCandidate(context.Background(), CandidateRequest{}); err == nil {
		t.Fatal("expected error when on-behalf-of is missing")
	}
}

func TestCreateCandidate_UpstreamErrorCarriesBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":[{"message":"email is invalid"}]}`))
	}))

	_, err := client.CreateCandidate(context.Background(), CandidateRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", apiErr.Status)
	}
	if !strings.Contains(apiErr.Body, "email is invalid") {
		t.Fatalf("body not preserved: %q", apiErr.Body)
	}
}

func TestJob_PubliclyVisible(t *testing.T) {
	cases := []struct {
		name string
		job  Job
		want bool
	}{
		{
			name: "open with open opening",
			job:  Job{Status: "open", Openings: []Opening{{Status: "open"}}},
			want: true,
		},
		{
			name: "confidential",
			job:  Job{Status: "open", Confidential: true, Openings: []Opening{{Status: "open"}}},
			want: false,
		},
		{
			name: "closed job",
			job:  Job{Status: "closed", Openings: []Opening{{Status: "open"}}},
			want: false,
		},
		{
			name: "no open openings",
			job:  Job{Status: "open", Openings: []Opening{{Status: "closed"}, {Status: "filled"}}},
			want: false,
		},
		{
			name: "no openings at all",
			job:  Job{Status: "open"},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.job.PubliclyVisible(); got != tc.want {
				t.Fatalf("PubliclyVisible() = %v, want %v", got, tc.want)
			}
		})
	}
}

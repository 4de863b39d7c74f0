package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type recordedRequest struct {
	method string
	path   string
	auth   string
	body   map[string]string
}

// newTestServer returns a server that records requests and replies with the
// given status and JSON payload.
func newTestServer(t *testing.T, status int, payload string, rec *[]recordedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			auth:   r.Header.Get("Authorization"),
		}
		if r.Body != nil {
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			req.body = body
		}
		*rec = append(*rec, req)

		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
}

func TestClient_GetUserInfo(t *testing.T) {
	var rec []recordedRequest
	srv := newTestServer(t, http.StatusOK, `{"_id":"u1","name":"Alice","about":"explorer","avatar":"https://example.com/a.png"}`, &rec)
	defer srv.Close()

	c := New(srv.URL, "token-123")
	user, err := c.GetUserInfo(context.Background())
	if err != nil {
		t.Fatalf("GetUserInfo: %v", err)
	}

	if user.ID != "u1" || user.Name != "Alice" {
		t.Errorf("unexpected user: %+v", user)
	}
	if rec[0].method != http.MethodGet || rec[0].path != "/users/me" {
		t.Errorf("unexpected request: %s %s", rec[0].method, rec[0].path)
	}
	if rec[0].auth != "token-123" {
		t.Errorf("missing authorization header, got %q", rec[0].auth)
	}
}

func TestClient_GetCardList(t *testing.T) {
	var rec []recordedRequest
	srv := newTestServer(t, http.StatusOK, `[{"_id":"c1","name":"first"},{"_id":"c2","name":"second"}]`, &rec)
	defer srv.Close()

	c := New(srv.URL, "t")
	cards, err := c.GetCardList(context.Background())
	if err != nil {
		t.Fatalf("GetCardList: %v", err)
	}

	if len(cards) != 2 || cards[0].ID != "c1" || cards[1].ID != "c2" {
		t.Errorf("server order must be preserved: %+v", cards)
	}
	if rec[0].method != http.MethodGet || rec[0].path != "/cards" {
		t.Errorf("unexpected request: %s %s", rec[0].method, rec[0].path)
	}
}

func TestClient_SetUserInfo(t *testing.T) {
	var rec []recordedRequest
	srv := newTestServer(t, http.StatusOK, `{"_id":"u1","name":"New","about":"Bio"}`, &rec)
	defer srv.Close()

	c := New(srv.URL, "t")
	user, err := c.SetUserInfo(context.Background(), "New", "Bio")
	if err != nil {
		t.Fatalf("SetUserInfo: %v", err)
	}

	if user.Name != "New" {
		t.Errorf("unexpected user: %+v", user)
	}
	if rec[0].method != http.MethodPatch || rec[0].path != "/users/me" {
		t.Errorf("unexpected request: %s %s", rec[0].method, rec[0].path)
	}
	if rec[0].body["name"] != "New" || rec[0].body["about"] != "Bio" {
		t.Errorf("unexpected body: %v", rec[0].body)
	}
}

func TestClient_AddNewCard(t *testing.T) {
	var rec []recordedRequest
	srv := newTestServer(t, http.StatusCreated, `{"_id":"c9","name":"Sunset","link":"https://example.com/s.jpg"}`, &rec)
	defer srv.Close()

	c := New(srv.URL, "t")
	card, err := c.AddNewCard(context.Background(), "Sunset", "https://example.com/s.jpg")
	if err != nil {
		t.Fatalf("AddNewCard: %v", err)
	}

	if card.ID != "c9" {
		t.Errorf("unexpected card: %+v", card)
	}
	if rec[0].method != http.MethodPost || rec[0].path != "/cards" {
		t.Errorf("unexpected request: %s %s", rec[0].method, rec[0].path)
	}
}

func TestClient_DeleteCard(t *testing.T) {
	var rec []recordedRequest
	srv := newTestServer(t, http.StatusOK, `{}`, &rec)
	defer srv.Close()

	c := New(srv.URL, "t")
	if err := c.DeleteCard(context.Background(), "c4"); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}

	if rec[0].method != http.MethodDelete || rec[0].path != "/cards/c4" {
		t.Errorf("unexpected request: %s %s", rec[0].method, rec[0].path)
	}
}

func TestClient_ChangeLikeStatus(t *testing.T) {
	var rec []recordedRequest
	srv := newTestServer(t, http.StatusOK, `{"_id":"c1","likes":[{"_id":"me"}]}`, &rec)
	defer srv.Close()

	c := New(srv.URL, "t")

	// Not currently liked → like (PUT)
	card, err := c.ChangeLikeStatus(context.Background(), "c1", false)
	if err != nil {
		t.Fatalf("ChangeLikeStatus(false): %v", err)
	}
	if card.LikeCount() != 1 {
		t.Errorf("LikeCount = %d, want 1", card.LikeCount())
	}
	if rec[0].method != http.MethodPut || rec[0].path != "/cards/likes/c1" {
		t.Errorf("liking must PUT, got %s %s", rec[0].method, rec[0].path)
	}

	// Currently liked → unlike (DELETE)
	if _, err := c.ChangeLikeStatus(context.Background(), "c1", true); err != nil {
		t.Fatalf("ChangeLikeStatus(true): %v", err)
	}
	if rec[1].method != http.MethodDelete {
		t.Errorf("unliking must DELETE, got %s", rec[1].method)
	}
}

func TestClient_NonSuccessStatus(t *testing.T) {
	var rec []recordedRequest
	srv := newTestServer(t, http.StatusForbidden, `{"message":"no"}`, &rec)
	defer srv.Close()

	c := New(srv.URL, "t")
	_, err := c.GetUserInfo(context.Background())
	if err == nil {
		t.Fatal("expected an error for a non-2xx status")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error must be a *RequestError, got %T", err)
	}
	if reqErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want 403", reqErr.Status)
	}
	if reqErr.Op != "getUserInfo" {
		t.Errorf("Op = %q, want getUserInfo", reqErr.Op)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the dial fails

	c := New(srv.URL, "t")
	_, err := c.GetCardList(context.Background())
	if err == nil {
		t.Fatal("expected a transport error")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error must be a *RequestError, got %T", err)
	}
	if reqErr.Status != 0 {
		t.Errorf("Status = %d, want 0 for transport failure", reqErr.Status)
	}
}

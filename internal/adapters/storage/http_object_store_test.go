package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestHTTPObjectStorePut(t *testing.T) {
	var gotAuth, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/object/store-images/user-1/photo.png" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewHTTPObjectStore(srv.URL, "secret", srv.Client())

	url, err := store.Put(context.Background(), "store-images", "user-1/photo.png", []byte("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	want := srv.URL + "/object/public/store-images/user-1/photo.png"
	if url != want {
		t.Errorf("public url = %s, want %s", url, want)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotType != "image/png" {
		t.Errorf("content type = %q", gotType)
	}
	if gotBody != "png-bytes" {
		t.Errorf("body = %q", gotBody)
	}
}

func TestHTTPObjectStoreRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewHTTPObjectStore(srv.URL, "secret", srv.Client())

	if _, err := store.Put(context.Background(), "avatars", "u/a.jpg", []byte("x"), "image/jpeg"); err != nil {
		t.Fatalf("Put after retry: %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("server calls = %d, want 2", n)
	}
}

func TestHTTPObjectStoreDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	store := NewHTTPObjectStore(srv.URL, "bad-key", srv.Client())

	if _, err := store.Put(context.Background(), "avatars", "u/a.jpg", []byte("x"), "image/jpeg"); err == nil {
		t.Fatal("expected an error for a 403 response")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server calls = %d, want 1", n)
	}
}

func TestHTTPObjectStoreRemove(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewHTTPObjectStore(srv.URL, "secret", srv.Client())

	if err := store.Remove(context.Background(), "medicine-images", "u/old.webp"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
}

package onedrive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmcdole/skylight/internal/domain"
)

func newTestClient(t *testing.T, h http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/v1.0", "tok", nil), srv
}

func TestGetItem(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1.0/me/drive/items/A1", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("$expand"); got != "thumbnails,tags" {
			t.Errorf("$expand = %q", got)
		}
		if got := r.URL.Query().Get("$select"); !strings.Contains(got, "@microsoft.graph.downloadUrl") ||
			!strings.HasPrefix(got, "id,name,") {
			t.Errorf("$select = %q", got)
		}
		fmt.Fprint(w, `{
			"id": "A1",
			"name": "beach.jpg",
			"webUrl": "https://onedrive.example/A1",
			"lastModifiedDateTime": "2024-06-01T10:30:00.123Z",
			"@microsoft.graph.downloadUrl": "https://dl.example/A1",
			"image": {"width": 4000, "height": 3000},
			"thumbnails": [{"id": "0", "large": {"url": "https://thumb.example/A1", "width": 800, "height": 600}}],
			"tags": [{"name": "summer"}, {"name": "family"}]
		}`)
	})
	c, _ := newTestClient(t, mux)

	p, err := c.GetItem(context.Background(), "A1")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if p.Name != "beach.jpg" || p.IsVideo {
		t.Errorf("unexpected payload: %+v", p)
	}
	if p.ThumbnailURL != "https://thumb.example/A1" {
		t.Errorf("ThumbnailURL = %q", p.ThumbnailURL)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "summer" {
		t.Errorf("Tags = %v", p.Tags)
	}
	if p.ModifiedAt.IsZero() {
		t.Error("ModifiedAt not parsed")
	}
}

func TestGetItemStatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		sentinel error
	}{
		{"not found", http.StatusNotFound, domain.ErrItemNotFound},
		{"unauthorized", http.StatusUnauthorized, domain.ErrAuthFailed},
		{"server error", http.StatusInternalServerError, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				fmt.Fprint(w, "itemNotFound: gone")
			}))

			_, err := c.GetItem(context.Background(), "X")
			var se *domain.StatusError
			if !errors.As(err, &se) {
				t.Fatalf("expected StatusError, got %v", err)
			}
			if se.Code != tt.code || se.Body != "itemNotFound: gone" {
				t.Errorf("got code %d body %q", se.Code, se.Body)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("expected %v in chain", tt.sentinel)
			}
		})
	}
}

func TestListChildrenFollowsNextLink(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/v1.0/me/drive/root", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": "R", "name": "root"}`)
	})
	mux.HandleFunc("/v1.0/me/drive/root/children", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"value": [{"id": "v1", "name": "clip.mp4", "video": {}}]}`)
			return
		}
		fmt.Fprintf(w, `{
			"value": [
				{"id": "f1", "name": "Albums", "folder": {"childCount": 3}},
				{"id": "i1", "name": "a.png", "file": {"mimeType": "image/png"}}
			],
			"@odata.nextLink": "%s/v1.0/me/drive/root/children?page=2"
		}`, srvURL)
	})
	c, srv := newTestClient(t, mux)
	srvURL = srv.URL

	folder, err := c.ListChildren(context.Background(), "root")
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(folder.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(folder.Items))
	}
	kinds := []domain.ItemKind{domain.KindFolder, domain.KindImage, domain.KindVideo}
	for i, k := range kinds {
		if folder.Items[i].Kind != k {
			t.Errorf("item %d kind = %s, want %s", i, folder.Items[i].Kind, k)
		}
	}
	if folder.Items[0].ChildCount != 3 {
		t.Errorf("ChildCount = %d", folder.Items[0].ChildCount)
	}
}

func TestDownloadOmitsTokenForForeignHosts(t *testing.T) {
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("token leaked to pre-authenticated URL")
		}
		w.Write([]byte("bytes"))
	}))
	defer foreign.Close()

	c := NewClient("https://graph.example/v1.0", "tok", nil)
	data, err := c.Download(context.Background(), foreign.URL+"/thumb")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if string(data) != "bytes" {
		t.Errorf("data = %q", data)
	}
}

func TestProbeStream(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		wantErr bool
	}{
		{"partial content", http.StatusPartialContent, false},
		{"full content", http.StatusOK, false},
		{"gone", http.StatusGone, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Range") != "bytes=0-0" {
					t.Errorf("Range = %q", r.Header.Get("Range"))
				}
				w.WriteHeader(tt.code)
				w.Write([]byte{0})
			}))
			defer srv.Close()

			c := NewClient("https://graph.example/v1.0", "tok", nil)
			err := c.ProbeStream(context.Background(), srv.URL+"/v.mp4")
			if (err != nil) != tt.wantErr {
				t.Errorf("ProbeStream err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetchDriveInfo(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1.0/me/drive" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"id": "d1", "driveType": "personal", "owner": {"user": {"displayName": "Sam"}}}`)
	}))

	drive, err := c.FetchDriveInfo(context.Background())
	if err != nil {
		t.Fatalf("FetchDriveInfo: %v", err)
	}
	if drive.ID != "d1" || drive.Owner.User.DisplayName != "Sam" {
		t.Errorf("unexpected drive: %+v", drive)
	}
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := NewClient(srv.URL, "tok", nil)
	_, err := c.GetItem(context.Background(), "A1")
	if !errors.Is(err, domain.ErrServerOffline) {
		t.Errorf("expected ErrServerOffline, got %v", err)
	}
}

package s3

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	awsS3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"aisumo/internal/blob/core"
)

// fakeS3 serves the HEAD/GET/PUT/DELETE/ListObjectsV2 subset the adapter uses.
type fakeS3 struct {
	mu    sync.Mutex
	state map[string]stored
	calls []string
}

type stored struct {
	body        []byte
	contentType string
}

func (m *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) { //nolint:cyclop
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req.Method)
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	if req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2" {
		return m.list(req.URL.Query().Get("prefix"), req.URL.Query().Get("continuation-token")), nil
	}
	switch req.Method {
	case http.MethodHead:
		if st, ok := m.state[key]; ok {
			return respond(http.StatusOK, nil, objectHeaders(st)), nil
		}
		return respond(http.StatusNotFound, nil, http.Header{}), nil
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if strings.Contains(req.Header.Get("Content-Encoding"), "aws-chunked") {
			body = decodeChunked(body)
		}
		if _, exists := m.state[key]; !exists {
			m.state[key] = stored{body: body, contentType: req.Header.Get("Content-Type")}
		}
		return respond(http.StatusOK, nil, http.Header{"ETag": {"\"etag\""}}), nil
	case http.MethodGet:
		if st, ok := m.state[key]; ok {
			return respond(http.StatusOK, st.body, objectHeaders(st)), nil
		}
		return respond(http.StatusNotFound, nil, http.Header{}), nil
	case http.MethodDelete:
		delete(m.state, key)
		return respond(http.StatusNoContent, nil, http.Header{}), nil
	}
	return respond(http.StatusNotImplemented, nil, http.Header{}), nil
}

// list returns the first key alone with a continuation token, then the rest.
func (m *fakeS3) list(prefix, token string) *http.Response {
	var keys []string
	for k := range m.state {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><ListBucketResult>`)
	page := keys
	switch {
	case token == "" && len(keys) > 1:
		page = keys[:1]
		b.WriteString("<IsTruncated>true</IsTruncated><NextContinuationToken>tok123</NextContinuationToken>")
	case token != "" && len(keys) > 1:
		page = keys[1:]
		b.WriteString("<IsTruncated>false</IsTruncated>")
	default:
		b.WriteString("<IsTruncated>false</IsTruncated>")
	}
	for _, k := range page {
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><ETag>&quot;e-%s&quot;</ETag><LastModified>2024-01-01T00:00:00Z</LastModified></Contents>",
			k, len(m.state[k].body), k)
	}
	b.WriteString("</ListBucketResult>")
	return respond(http.StatusOK, []byte(b.String()), http.Header{"Content-Type": {"application/xml"}})
}

func objectHeaders(st stored) http.Header {
	return http.Header{
		"Content-Length": {strconv.Itoa(len(st.body))},
		"Content-Type":   {st.contentType},
		"ETag":           {"\"etag123\""},
		"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
	}
}

func respond(status int, body []byte, h http.Header) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(body)), Header: h, ContentLength: int64(len(body))}
}

// decodeChunked strips aws-chunked framing: <hex>[;ext]\r\n<data>\r\n ... 0\r\n.
func decodeChunked(b []byte) []byte {
	r := bufio.NewReader(bytes.NewReader(b))
	var out []byte
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return b
		}
		sizeHex, _, _ := strings.Cut(strings.TrimSpace(line), ";")
		n, err := strconv.ParseInt(sizeHex, 16, 64)
		if err != nil {
			return b
		}
		if n == 0 {
			return out
		}
		chunk := make([]byte, n)
		if _, err := io.ReadFull(r, chunk); err != nil {
			return b
		}
		out = append(out, chunk...)
		if _, err := r.ReadString('\n'); err != nil {
			return b
		}
	}
}

func newFakeStore(t *testing.T, cfg Config) (*Store, *fakeS3) {
	t.Helper()
	rt := &fakeS3{state: make(map[string]stored)}
	if cfg.Bucket == "" {
		cfg.Bucket = "test-bucket"
	}
	cfg.AccessKeyID, cfg.SecretAccessKey = "AKIA", "SECRET"
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://mock.s3.local"
	}
	cfg.PathStyle = true
	store, err := New(context.Background(), cfg, func(o *awsS3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return store, rt
}

func TestStorePutGetHeadDelete(t *testing.T) {
	store, _ := newFakeStore(t, Config{})
	ctx := context.Background()
	info, err := store.Put(ctx, "tool-icons/1-abc.png", bytes.NewReader([]byte("hello")), core.PutOptions{ContentType: "image/png"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "tool-icons/1-abc.png" || info.ContentType != "image/png" || info.Size != 5 || info.ETag != "etag123" {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.URL != "https://mock.s3.local/test-bucket/tool-icons/1-abc.png" {
		t.Fatalf("unexpected url %s", info.URL)
	}
	if _, err := store.Put(ctx, "tool-icons/1-abc.png", bytes.NewReader([]byte("x")), core.PutOptions{}); err == nil {
		t.Fatalf("expected duplicate put error")
	}
	_, rc, err := store.Get(ctx, "tool-icons/1-abc.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(b) != "hello" {
		t.Fatalf("unexpected body %q", b)
	}
	ok, err := store.Delete(ctx, "tool-icons/1-abc.png")
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	ok, err = store.Delete(ctx, "tool-icons/1-abc.png")
	if err != nil || ok {
		t.Fatalf("second delete should report missing, got %v %v", ok, err)
	}
	if _, err := store.Head(ctx, "tool-icons/1-abc.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist head error after delete, got %v", err)
	}
	if _, err := store.Put(ctx, "  ", bytes.NewReader(nil), core.PutOptions{}); err == nil {
		t.Fatalf("expected empty key error")
	}
}

func TestStoreListPaginates(t *testing.T) {
	store, rt := newFakeStore(t, Config{})
	ctx := context.Background()
	for _, k := range []string{"tool-icons/b.png", "tool-icons/a.png", "other/c.png"} {
		if _, err := store.Put(ctx, k, bytes.NewReader([]byte(k)), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", k, err)
		}
	}
	rt.calls = nil
	list, err := store.List(ctx, "tool-icons/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != "tool-icons/a.png" || list[1].Key != "tool-icons/b.png" {
		t.Fatalf("unexpected list %+v", list)
	}
	if list[0].ETag != "e-tool-icons/a.png" || list[0].URL == "" {
		t.Fatalf("unexpected list entry %+v", list[0])
	}
	if len(rt.calls) != 2 {
		t.Fatalf("expected two list pages, got %v", rt.calls)
	}
}

func TestPublicBase(t *testing.T) {
	cases := []struct {
		cfg  Config
		want string
	}{
		{Config{Bucket: "b", PublicBaseURL: "https://cdn.example.com/"}, "https://cdn.example.com/k.png"},
		{Config{Bucket: "b", Endpoint: "http://localhost:9000"}, "http://localhost:9000/b/k.png"},
		{Config{Bucket: "b"}, "https://b.s3.eu-west-1.amazonaws.com/k.png"},
	}
	for _, tc := range cases {
		got := core.JoinURL(publicBase(tc.cfg, "eu-west-1"), "k.png")
		if got != tc.want {
			t.Fatalf("publicBase(%+v) = %s, want %s", tc.cfg, got, tc.want)
		}
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket error")
	}
}

func TestDriver(t *testing.T) {
	store, _ := newFakeStore(t, Config{})
	if store.Driver() != core.DriverS3 {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"socialhub/pkg/config"

	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type Case struct {
	Name          string
	Body          string
	Path          string
	Method        string
	Status        int
	MatchExpected func(interface{}) (string, bool)
	NeedPostID    bool
}

var postID string

func message(expected string) func(interface{}) (string, bool) {
	return func(v interface{}) (string, bool) {
		m, _ := v.(map[string]interface{})
		if m["message"] != expected {
			return fmt.Sprintf("expected message %q but was %v", expected, v), false
		}
		return "", true
	}
}

func field(name string, expected interface{}) func(interface{}) (string, bool) {
	return func(v interface{}) (string, bool) {
		m, _ := v.(map[string]interface{})
		if !reflect.DeepEqual(m[name], expected) {
			return fmt.Sprintf("expected %s %v but was %v", name, expected, m[name]), false
		}
		return "", true
	}
}

func count(expected int) func(interface{}) (string, bool) {
	return func(v interface{}) (string, bool) {
		list, ok := v.([]interface{})
		if !ok || len(list) != expected {
			return fmt.Sprintf("expected %d posts but was %v", expected, v), false
		}
		return "", true
	}
}

var cases = []Case{
	{
		Name:          "success register",
		Body:          `{"name":"Test User","email":"test@test.com","password":"secret"}`,
		Path:          "/api/register",
		Method:        http.MethodPost,
		Status:        http.StatusCreated,
		MatchExpected: field("email", "test@test.com"),
	},
	{
		Name:   "fail register duplicate email",
		Body:   `{"name":"Other","email":"test@test.com","password":"secret"}`,
		Path:   "/api/register",
		Method: http.MethodPost,
		Status: http.StatusUnprocessableEntity,
		MatchExpected: func(v interface{}) (string, bool) {
			m, _ := v.(map[string]interface{})
			_, ok := m["errors"]
			return fmt.Sprintf("expected errors but was %v", v), ok
		},
	},
	{
		Name:          "fail post create unauthorized",
		Body:          `{"text":"hello"}`,
		Path:          "/api/posts",
		Method:        http.MethodPost,
		Status:        http.StatusUnauthorized,
		MatchExpected: message("unauthorized"),
	},
	{
		Name:          "fail login wrong password",
		Body:          `{"email":"test@test.com","password":"wrong"}`,
		Path:          "/api/login",
		Method:        http.MethodPost,
		Status:        http.StatusUnauthorized,
		MatchExpected: message("invalid credentials"),
	},
	{
		Name:          "success login",
		Body:          `{"email":"test@test.com","password":"secret"}`,
		Path:          "/api/login",
		Method:        http.MethodPost,
		Status:        http.StatusOK,
		MatchExpected: field("name", "Test User"),
	},
	{
		Name:          "current session",
		Path:          "/api/session",
		Method:        http.MethodGet,
		Status:        http.StatusOK,
		MatchExpected: field("email", "test@test.com"),
	},
	{
		Name:          "demo posts seeded",
		Path:          "/api/posts",
		Method:        http.MethodGet,
		Status:        http.StatusOK,
		MatchExpected: count(3),
	},
	{
		Name:   "success post create",
		Body:   `{"text":"  Hello SocialHub  ","image":""}`,
		Path:   "/api/posts",
		Method: http.MethodPost,
		Status: http.StatusCreated,
		MatchExpected: func(v interface{}) (string, bool) {
			m, _ := v.(map[string]interface{})
			postID = fmt.Sprintf("%.0f", m["id"])
			if m["author"] != "Test User" || m["text"] != "Hello SocialHub" || m["timeAgo"] != "Just now" {
				return fmt.Sprintf("unexpected post %v", m), false
			}
			return "", true
		},
	},
	{
		Name:          "get post",
		Path:          "/api/post/",
		Method:        http.MethodGet,
		Status:        http.StatusOK,
		MatchExpected: field("likes", float64(0)),
		NeedPostID:    true,
	},
	{
		Name:          "like post",
		Path:          "/api/post/%s/like",
		Method:        http.MethodPost,
		Status:        http.StatusOK,
		MatchExpected: field("liked", true),
		NeedPostID:    true,
	},
	{
		Name:   "react to post",
		Path:   "/api/post/%s/react/love",
		Method: http.MethodPost,
		Status: http.StatusOK,
		MatchExpected: field("reactionCounts", []interface{}{
			map[string]interface{}{"kind": "love", "count": float64(1)},
		}),
		NeedPostID: true,
	},
	{
		Name:          "fail react unknown kind",
		Path:          "/api/post/%s/react/meh",
		Method:        http.MethodPost,
		Status:        http.StatusBadRequest,
		MatchExpected: message("invalid reaction kind"),
		NeedPostID:    true,
	},
	{
		Name:          "edit post",
		Body:          `{"text":"edited text"}`,
		Path:          "/api/post/",
		Method:        http.MethodPut,
		Status:        http.StatusOK,
		MatchExpected: field("text", "edited text"),
		NeedPostID:    true,
	},
	{
		Name:          "search posts",
		Path:          "/api/posts?q=EDITED&filter=popular",
		Method:        http.MethodGet,
		Status:        http.StatusOK,
		MatchExpected: count(1),
	},
	{
		Name:          "delete post",
		Path:          "/api/post/",
		Method:        http.MethodDelete,
		Status:        http.StatusOK,
		MatchExpected: message("success"),
		NeedPostID:    true,
	},
	{
		Name:          "get deleted post",
		Path:          "/api/post/",
		Method:        http.MethodGet,
		Status:        http.StatusNotFound,
		MatchExpected: message("post not found"),
		NeedPostID:    true,
	},
	{
		Name:          "default theme",
		Path:          "/api/theme",
		Method:        http.MethodGet,
		Status:        http.StatusOK,
		MatchExpected: field("theme", "light"),
	},
	{
		Name:          "toggle theme",
		Path:          "/api/theme/toggle",
		Method:        http.MethodPost,
		Status:        http.StatusOK,
		MatchExpected: field("theme", "dark"),
	},
	{
		Name:          "logout",
		Path:          "/api/logout",
		Method:        http.MethodPost,
		Status:        http.StatusOK,
		MatchExpected: message("success"),
	},
	{
		Name:          "session after logout",
		Path:          "/api/session",
		Method:        http.MethodGet,
		Status:        http.StatusUnauthorized,
		MatchExpected: message("unauthorized"),
	},
	{
		Name:          "unknown api route",
		Path:          "/api/nothing",
		Method:        http.MethodGet,
		Status:        http.StatusNotFound,
		MatchExpected: message("not found"),
	},
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Storage.Driver = config.DriverMemory
	return cfg
}

func TestFunctionality(t *testing.T) {
	app, err := NewApplication(context.Background(), testConfig(), zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Error())
	}
	defer app.Close()

	srv := httptest.NewServer(app.Handler)
	defer srv.Close()

	client := &http.Client{
		Timeout:   time.Second * 10,
		Transport: &http.Transport{DisableKeepAlives: true},
	}

	for i, tc := range cases {
		path := tc.Path
		if tc.NeedPostID {
			if strings.Contains(path, "%s") {
				path = fmt.Sprintf(path, postID)
			} else {
				path += postID
			}
		}

		request, err := http.NewRequest(tc.Method, srv.URL+path, bytes.NewBufferString(tc.Body))
		if err != nil {
			t.Fatalf("test case %d %s, error on preparing request: %s", i, tc.Name, err.Error())
		}
		request.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(request)
		if err != nil {
			t.Fatalf("test case %d %s failed, error on request: %s", i, tc.Name, err.Error())
		}

		respBytes, err := ioutil.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("test case %d %s failed, error on read: %s", i, tc.Name, err.Error())
		}

		if resp.StatusCode != tc.Status {
			t.Fatalf("test case %d %s failed, unexpected status code: %d, body: %s", i, tc.Name, resp.StatusCode, respBytes)
		}
		if resp.Header.Get("X-Request-ID") == "" {
			t.Fatalf("test case %d %s failed, missing request id", i, tc.Name)
		}

		var fact interface{}
		if err := json.Unmarshal(respBytes, &fact); err != nil {
			t.Fatalf("test case %d %s failed, invalid json: %s", i, tc.Name, err.Error())
		}

		if message, eq := tc.MatchExpected(fact); !eq {
			t.Fatalf("test case %d %s failed: %s", i, tc.Name, message)
		}
	}
}

func TestRunShutdown(t *testing.T) {
	cfg := testConfig()
	cfg.Addr = "127.0.0.1:0"
	app, err := NewApplication(context.Background(), cfg, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Error())
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err.Error())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Driver = "cassandra"
	if _, err := NewApplication(context.Background(), cfg, zap.NewNop().Sugar()); err == nil {
		t.Fatal("expected error but was nil")
	}
}

func TestVersionCommand(t *testing.T) {
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err.Error())
	}
	if strings.TrimSpace(out.String()) != version {
		t.Fatalf("expected %s but was %s", version, out.String())
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"socialhub/pkg/feed"
	"socialhub/pkg/posts"
	"socialhub/pkg/session"
	"socialhub/pkg/storage"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var now = time.Date(2025, 11, 22, 15, 30, 0, 0, time.UTC)

func testPostData() []*posts.Post {
	return []*posts.Post{
		{ID: 3, Author: "Muzammil Qurban", Text: "Dark mode is available", Likes: 63, Timestamp: now.Add(-30 * time.Minute),
			Reactions: map[posts.ReactionKind]int{}},
		{ID: 2, Author: "Akif Mehmood", Text: "Welcome to SocialHub!", Likes: 28, Timestamp: now.Add(-time.Hour),
			Reactions: map[posts.ReactionKind]int{posts.ReactionLove: 2, posts.ReactionLike: 1}},
		{ID: 1, Author: "Ak", Text: "snowboarding pics", Image: "https://example.com/a.jpg", Likes: 68, Timestamp: now.Add(-2 * time.Hour),
			Reactions: map[posts.ReactionKind]int{}},
	}
}

func expectedResponses(data []*posts.Post, order ...int64) []*PostResponse {
	byID := make(map[int64]*posts.Post, len(data))
	for _, p := range data {
		byID[p.ID] = p
	}
	res := make([]*PostResponse, 0, len(order))
	for _, id := range order {
		res = append(res, MapToPostResponse(byID[id], now))
	}
	return res
}

var likedPost = &posts.Post{ID: 2, Author: "Akif Mehmood", Text: "Welcome to SocialHub!", Likes: 29, Liked: true,
	Timestamp: now.Add(-time.Hour), Reactions: map[posts.ReactionKind]int{}}

var newPost = &posts.Post{ID: now.UnixNano() / 1e6, Author: "Test", Text: "hello", Likes: 0,
	Timestamp: now, Reactions: map[posts.ReactionKind]int{}}

type getTestCase struct {
	name     string
	handler  func(*PostHandler, http.ResponseWriter, *http.Request)
	prepare  func(*MockPostsRepo)
	method   string
	target   string
	status   int
	vars     map[string]string
	needAuth bool
	body     string

	expected       []*PostResponse
	expectedOne    *PostResponse
	expectedCustom map[string]string
}

var getTestCases = []getTestCase{
	{
		name:   "ListDefaultLatest",
		status: http.StatusOK,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.List(rw, r)
		},
		prepare: func(repo *MockPostsRepo) {
			repo.EXPECT().GetAll().Return(testPostData())
		},
		expected: expectedResponses(testPostData(), 3, 2, 1),
		method:   http.MethodGet,
		target:   "/api/posts",
	},
	{
		name:   "ListPopular",
		status: http.StatusOK,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.List(rw, r)
		},
		prepare: func(repo *MockPostsRepo) {
			repo.EXPECT().GetAll().Return(testPostData())
		},
		expected: expectedResponses(testPostData(), 1, 3, 2),
		method:   http.MethodGet,
		target:   "/api/posts?filter=popular",
	},
	{
		name:   "ListSearch",
		status: http.StatusOK,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.List(rw, r)
		},
		prepare: func(repo *MockPostsRepo) {
			repo.EXPECT().GetAll().Return(testPostData())
		},
		expected: expectedResponses(testPostData(), 1, 2),
		method:   http.MethodGet,
		target:   "/api/posts?q=AK&filter=oldest",
	},
	{
		name:   "GetByID",
		status: http.StatusOK,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.Get(rw, r)
		},
		prepare: func(repo *MockPostsRepo) {
			repo.EXPECT().GetByID(int64(2)).Return(testPostData()[1], nil)
		},
		expectedOne: expectedResponses(testPostData(), 2)[0],
		method:      http.MethodGet,
		vars:        map[string]string{"id": "2"},
	},
	{
		name:   "GetNotFound",
		status: http.StatusNotFound,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.Get(rw, r)
		},
		prepare: func(repo *MockPostsRepo) {
			repo.EXPECT().GetByID(int64(42)).Return(nil, posts.ErrNotFound)
		},
		expectedCustom: map[string]string{"message": "post not found"},
		method:         http.MethodGet,
		vars:           map[string]string{"id": "42"},
	},
	{
		name:   "GetBadID",
		status: http.StatusBadRequest,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.Get(rw, r)
		},
		expectedCustom: map[string]string{"message": "wrong id value: abc"},
		method:         http.MethodGet,
		vars:           map[string]string{"id": "abc"},
	},
	{
		name:     "Create",
		needAuth: true,
		status:   http.StatusCreated,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.Create(rw, r)
		},
		prepare: func(repo *MockPostsRepo) {
			repo.EXPECT().Create(gomock.Any(), "Test", "hello", "").Return(newPost, nil)
		},
		expectedOne: MapToPostResponse(newPost, now),
		body:        `{"text":"hello"}`,
		method:      http.MethodPost,
	},
	{
		name:   "CreateUnauthorized",
		status: http.StatusUnauthorized,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.Create(rw, r)
		},
		expectedCustom: map[string]string{"message": "unauthorized"},
		body:           `{"text":"hello"}`,
		method:         http.MethodPost,
	},
	{
		name:     "CreateEmptyText",
		needAuth: true,
		status:   http.StatusUnprocessableEntity,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.Create(rw, r)
		},
		prepare: func(repo *MockPostsRepo) {
			repo.EXPECT().Create(gomock.Any(), "Test", "   ", "").Return(nil, posts.ErrEmptyText)
		},
		body:   `{"text":"   "}`,
		method: http.MethodPost,
	},
	{
		name:     "EditKeepsImage",
		needAuth: true,
		status:   http.StatusOK,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.Edit(rw, r)
		},
		prepare: func(repo *MockPostsRepo) {
			cur := testPostData()[2]
			edited := testPostData()[2]
			edited.Text = "fresh powder"
			repo.EXPECT().GetByID(int64(1)).Return(cur, nil)
			repo.EXPECT().Edit(gomock.Any(), int64(1), "fresh powder", cur.Image).Return(edited, nil)
		},
		expectedOne: func() *PostResponse {
			p := testPostData()[2]
			p.Text = "fresh powder"
			return MapToPostResponse(p, now)
		}(),
		body:   `{"text":"fresh powder"}`,
		method: http.MethodPut,
		vars:   map[string]string{"id": "1"},
	},
	{
		name:     "EditNotFound",
		needAuth: true,
		status:   http.StatusNotFound,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.Edit(rw, r)
		},
		prepare: func(repo *MockPostsRepo) {
			repo.EXPECT().Edit(gomock.Any(), int64(42), "text", "").Return(nil, posts.ErrNotFound)
		},
		expectedCustom: map[string]string{"message": "post not found"},
		body:           `{"text":"text","image":""}`,
		method:         http.MethodPut,
		vars:           map[string]string{"id": "42"},
	},
	{
		name:     "Delete",
		needAuth: true,
		status:   http.StatusOK,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.Delete(rw, r)
		},
		prepare: func(repo *MockPostsRepo) {
			repo.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil)
		},
		expectedCustom: map[string]string{"message": "success"},
		method:         http.MethodDelete,
		vars:           map[string]string{"id": "3"},
	},
	{
		name:     "DeleteStorageFailure",
		needAuth: true,
		status:   http.StatusInternalServerError,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.Delete(rw, r)
		},
		prepare: func(repo *MockPostsRepo) {
			repo.EXPECT().Delete(gomock.Any(), int64(3)).Return(storage.ErrStorage)
		},
		expectedCustom: map[string]string{"message": "internal error"},
		method:         http.MethodDelete,
		vars:           map[string]string{"id": "3"},
	},
	{
		name:     "Like",
		needAuth: true,
		status:   http.StatusOK,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.Like(rw, r)
		},
		prepare: func(repo *MockPostsRepo) {
			repo.EXPECT().ToggleLike(gomock.Any(), int64(2)).Return(likedPost, nil)
		},
		expectedOne: MapToPostResponse(likedPost, now),
		method:      http.MethodPost,
		vars:        map[string]string{"id": "2"},
	},
	{
		name:     "React",
		needAuth: true,
		status:   http.StatusOK,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.React(rw, r)
		},
		prepare: func(repo *MockPostsRepo) {
			repo.EXPECT().AddReaction(gomock.Any(), int64(2), posts.ReactionLove).Return(testPostData()[1], nil)
		},
		expectedOne: expectedResponses(testPostData(), 2)[0],
		method:      http.MethodPost,
		vars:        map[string]string{"id": "2", "kind": "love"},
	},
	{
		name:     "ReactInvalidKind",
		needAuth: true,
		status:   http.StatusBadRequest,
		handler: func(ph *PostHandler, rw http.ResponseWriter, r *http.Request) {
			ph.React(rw, r)
		},
		expectedCustom: map[string]string{"message": "invalid reaction kind"},
		method:         http.MethodPost,
		vars:           map[string]string{"id": "2", "kind": "meh"},
	},
}

func TestPostCases(t *testing.T) {
	for i, tc := range getTestCases {
		ctrl := gomock.NewController(t)
		repo := NewMockPostsRepo(ctrl)
		h := &PostHandler{Repo: repo, Logger: zap.NewNop().Sugar(), Now: func() time.Time { return now }}
		if tc.prepare != nil {
			tc.prepare(repo)
		}
		w := httptest.NewRecorder()

		target := tc.target
		if target == "" {
			target = "/"
		}
		var r *http.Request
		if tc.body != "" {
			r = httptest.NewRequest(tc.method, target, bytes.NewBufferString(tc.body))
		} else {
			r = httptest.NewRequest(tc.method, target, nil)
		}

		if tc.needAuth {
			r = r.WithContext(session.ContextWithUser(r.Context(), testUser))
		}
		if tc.vars != nil {
			r = mux.SetURLVars(r, tc.vars)
		}

		tc.handler(h, w, r)
		if w.Code != tc.status {
			t.Fatalf("test case %d %s wrong response code, expected %v but was %v", i, tc.name, tc.status, w.Code)
		}
		resBytes, err := ioutil.ReadAll(w.Result().Body)
		if err != nil {
			t.Fatalf("unexpected error occured: %v", err.Error())
		}

		if tc.expected != nil {
			var res []*PostResponse
			err := json.Unmarshal(resBytes, &res)
			if err != nil {
				t.Fatalf("test case %d %s can't get expected result, error occured: %v", i, tc.name, err.Error())
			}
			if len(res) != len(tc.expected) {
				t.Fatalf("test case %d %s expected %d posts but was %d", i, tc.name, len(tc.expected), len(res))
			}
			for j := 0; j < len(res); j++ {
				PostsTestEquals(t, res[j], tc.expected[j])
			}
		}
		if tc.expectedOne != nil {
			var res *PostResponse
			err := json.Unmarshal(resBytes, &res)
			if err != nil {
				t.Fatalf("can't get expected result, error occured: %v", err.Error())
			}
			PostsTestEquals(t, res, tc.expectedOne)
		}
		if tc.expectedCustom != nil {
			res := map[string]string{}
			err := json.Unmarshal(resBytes, &res)
			if err != nil {
				t.Fatalf("can't get expected result, error occured: %v", err.Error())
			}

			if !reflect.DeepEqual(tc.expectedCustom, res) {
				t.Errorf("test case %d %s: expected: %v, but was: %v", i, tc.name, tc.expectedCustom, res)
			}
		}
		ctrl.Finish()
	}
}

func TestPostResponseLabels(t *testing.T) {
	p := testPostData()[1]
	resp := MapToPostResponse(p, now)
	if resp.TimeAgo != "1h ago" {
		t.Errorf("expected time label %q but was %q", "1h ago", resp.TimeAgo)
	}
	expected := []feed.ReactionCount{{Kind: posts.ReactionLike, Count: 1}, {Kind: posts.ReactionLove, Count: 2}}
	if !reflect.DeepEqual(resp.ReactionCounts, expected) {
		t.Errorf("expected counts %v but was %v", expected, resp.ReactionCounts)
	}
}

func PostsTestEquals(t *testing.T, p1 *PostResponse, p2 *PostResponse) {
	if !p1.Timestamp.Equal(p2.Timestamp) {
		t.Errorf("test fail, timestamps not equal. expected: %v, but was: %v", p2.Timestamp, p1.Timestamp)
	}
	p1.Timestamp = p2.Timestamp

	if !reflect.DeepEqual(p1, p2) {
		t.Errorf("test fail, expected: %v, but was: %v", p2, p1)
	}
}

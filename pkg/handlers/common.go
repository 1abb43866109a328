package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"time"

	"socialhub/pkg/feed"
	"socialhub/pkg/posts"
	"socialhub/pkg/session"
	"socialhub/pkg/user"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

type Response struct {
	Message string `json:"message"`
}

type CustomError struct {
	Location string `json:"location"`
	Param    string `json:"param"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
}

type ErrorsResponse struct {
	Errors []*CustomError `json:"errors"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PostResponse carries every user-supplied field as is. Clients must escape
// author, text and image before rendering them.
type PostResponse struct {
	ID             int64                      `json:"id"`
	Author         string                     `json:"author"`
	Text           string                     `json:"text"`
	Image          string                     `json:"image"`
	Likes          int                        `json:"likes"`
	Liked          bool                       `json:"liked"`
	Timestamp      time.Time                  `json:"timestamp"`
	TimeAgo        string                     `json:"timeAgo"`
	Reactions      map[posts.ReactionKind]int `json:"reactions"`
	ReactionCounts []feed.ReactionCount       `json:"reactionCounts"`
}

func WriteResponse(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, &Response{Message: msg}, status)
}

func writeErrorsResponse(w http.ResponseWriter, errors []*CustomError, status int) {
	writeJSON(w, &ErrorsResponse{Errors: errors}, status)
}

func writeJSON(w http.ResponseWriter, v interface{}, status int) {
	res, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(res)
}

// readJSON decodes the request body into v and answers 400 on failure.
func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return false
	}

	if err := json.Unmarshal(body, v); err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return false
	}

	return true
}

// writeError maps domain errors to responses. Anything unrecognised,
// storage failures included, is logged and answered with 500.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	var verr *user.ValidationError
	switch {
	case errors.As(err, &verr):
		writeErrorsResponse(w, []*CustomError{
			{Location: "body", Param: verr.Field, Value: verr.Value, Msg: verr.Msg},
		}, http.StatusUnprocessableEntity)
	case errors.Is(err, user.ErrDuplicateEmail):
		writeErrorsResponse(w, []*CustomError{
			{Location: "body", Param: "email", Msg: "already exists"},
		}, http.StatusUnprocessableEntity)
	case errors.Is(err, posts.ErrEmptyText):
		writeErrorsResponse(w, []*CustomError{
			{Location: "body", Param: "text", Msg: "cannot be blank"},
		}, http.StatusUnprocessableEntity)
	case errors.Is(err, user.ErrInvalidCredentials):
		WriteResponse(w, "invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, posts.ErrNotFound):
		WriteResponse(w, "post not found", http.StatusNotFound)
	case errors.Is(err, posts.ErrInvalidReactionKind):
		WriteResponse(w, "invalid reaction kind", http.StatusBadRequest)
	case errors.Is(err, session.ErrInvalidTheme):
		WriteResponse(w, "invalid theme", http.StatusBadRequest)
	default:
		logger.Error(err.Error())
		WriteResponse(w, "internal error", http.StatusInternalServerError)
	}
}

func mapToUserResponse(u *user.User) *UserResponse {
	return &UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func MapToPostResponse(p *posts.Post, now time.Time) *PostResponse {
	return &PostResponse{
		ID:             p.ID,
		Author:         p.Author,
		Text:           p.Text,
		Image:          p.Image,
		Likes:          p.Likes,
		Liked:          p.Liked,
		Timestamp:      p.Timestamp,
		TimeAgo:        feed.TimeAgo(p.Timestamp, now),
		Reactions:      p.Reactions,
		ReactionCounts: feed.ReactionCounts(p.Reactions),
	}
}

func ParseIDParam(r *http.Request, name string) (int64, error) {
	vars := mux.Vars(r)
	varStr := vars[name]
	val, err := strconv.ParseInt(varStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("wrong id value: %v", varStr)
	}

	return val, nil
}

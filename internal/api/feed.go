package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Feed kinds accepted by the posts endpoint.
const (
	FeedAll       = "all"
	FeedFollowing = "following"
	FeedProfile   = "profile"
)

// MaxPostLength is the server's content limit; the client enforces it
// locally before issuing a request.
const MaxPostLength = 1024

// Post mirrors the feed server's post payload.
type Post struct {
	ID               int    `json:"id"`
	Author           string `json:"author"`
	AuthorID         int    `json:"author_id"`
	Content          string `json:"content"`
	CreatedAt        string `json:"created_at"`
	CreatedAtDisplay string `json:"created_at_display"`
	UpdatedAt        string `json:"updated_at"`
	LikeCount        int    `json:"like_count"`
	Liked            bool   `json:"liked"`
	CanEdit          bool   `json:"can_edit"`
}

// PostPage is one page of posts plus pagination metadata.
type PostPage struct {
	Page        int    `json:"page"`
	TotalPages  int    `json:"total_pages"`
	HasNext     bool   `json:"has_next"`
	HasPrevious bool   `json:"has_previous"`
	Results     []Post `json:"results"`
}

// Profile mirrors GET /api/profile/{username}.
type Profile struct {
	Username    string `json:"username"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	IsSelf      bool   `json:"is_self"`
	IsFollowing bool   `json:"is_following"`
}

// FollowState is the follow toggle's response.
type FollowState struct {
	IsFollowing bool `json:"is_following"`
	Followers   int  `json:"followers"`
	Following   int  `json:"following"`
}

// PostQuery selects which page of which feed to fetch. Username applies to
// the profile feed only.
type PostQuery struct {
	Feed     string
	Page     int
	Username string
}

// FeedAPI is the surface the feed screens consume.
type FeedAPI interface {
	Login(ctx context.Context, username, password string) error
	LoggedIn() bool
	Posts(ctx context.Context, q PostQuery) (PostPage, error)
	CreatePost(ctx context.Context, content string) (Post, error)
	EditPost(ctx context.Context, id int, content string) (Post, error)
	ToggleLike(ctx context.Context, id int) (Post, error)
	Profile(ctx context.Context, username string) (Profile, error)
	ToggleFollow(ctx context.Context, username string) (FollowState, error)
}

// Ensure Feed implements FeedAPI at compile time.
var _ FeedAPI = (*Feed)(nil)

// Feed binds a Client to the feed server's endpoints.
type Feed struct {
	*Client
}

// NewFeed builds a feed service for the given server address.
func NewFeed(addr string) (*Feed, error) {
	c, err := NewClient(addr)
	if err != nil {
		return nil, err
	}
	return &Feed{Client: c}, nil
}

// Posts fetches one page of the selected feed.
func (f *Feed) Posts(ctx context.Context, q PostQuery) (PostPage, error) {
	values := url.Values{}
	if q.Feed != "" {
		values.Set("feed", q.Feed)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Username != "" {
		values.Set("username", q.Username)
	}
	return get[PostPage](ctx, f.Client, "/api/posts", values)
}

type postContent struct {
	Content string `json:"content"`
}

// CreatePost publishes a new post and returns the server's copy.
func (f *Feed) CreatePost(ctx context.Context, content string) (Post, error) {
	return send[Post](ctx, f.Client, http.MethodPost, "/api/posts", postContent{Content: content})
}

// EditPost replaces a post's content and returns the updated post.
func (f *Feed) EditPost(ctx context.Context, id int, content string) (Post, error) {
	return send[Post](ctx, f.Client, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), postContent{Content: content})
}

type likeToggle struct {
	ToggleLike bool `json:"toggle_like"`
}

// ToggleLike flips the caller's like on a post and returns the updated post.
func (f *Feed) ToggleLike(ctx context.Context, id int) (Post, error) {
	return send[Post](ctx, f.Client, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), likeToggle{ToggleLike: true})
}

// Profile fetches follower counts and follow state for a user.
func (f *Feed) Profile(ctx context.Context, username string) (Profile, error) {
	return get[Profile](ctx, f.Client, "/api/profile/"+username, nil)
}

// ToggleFollow flips the caller's follow relationship with a user.
func (f *Feed) ToggleFollow(ctx context.Context, username string) (FollowState, error) {
	return send[FollowState](ctx, f.Client, http.MethodPost, "/api/profile/"+username+"/follow", nil)
}

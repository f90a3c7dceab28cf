package web_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"
	"yatube/internal/testutils"
	"yatube/models"
	"yatube/web"
)

func decodePage(t *testing.T, body []byte) web.PageInfo {
	t.Helper()
	page := web.PageInfo{}
	if err := json.Unmarshal(body, &page); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return page
}

// feedSection cuts the cached part out of the home page
func feedSection(t *testing.T, body string) string {
	t.Helper()
	start := strings.Index(body, `<section class="feed">`)
	end := strings.Index(body, "</section>")
	if start < 0 || end < start {
		t.Fatalf("no feed section in %s", body)
	}
	return body[start : end+len("</section>")]
}

func TestIndexIsCached(t *testing.T) {
	ts := newTestSite(t)
	alice := testutils.NewUser(t, ts.DB, "alice")
	testutils.NewPost(t, ts.DB, alice, nil, "first post", 1000)

	resp := testutils.Get(ts.router, "/")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "first post") {
		t.Fatalf("GET / = %d", resp.Code)
	}
	cachedFeed := feedSection(t, resp.Body.String())
	cachedJSON := testutils.Get(ts.router, "/?format=json").Body.Bytes()

	cookies := ts.login(t, "alice")
	resp = testutils.PostForm(ts.router, "/new", url.Values{"text": {"second post"}}, cookies)
	if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/" {
		t.Fatalf("POST /new = %d %q", resp.Code, resp.Header().Get("Location"))
	}

	// Still the cached copy, byte for byte
	resp = testutils.Get(ts.router, "/", cookies)
	if got := feedSection(t, resp.Body.String()); got != cachedFeed {
		t.Errorf("cached feed changed:\n%s\nwant\n%s", got, cachedFeed)
	}
	if got := testutils.Get(ts.router, "/?format=json").Body.Bytes(); !bytes.Equal(got, cachedJSON) {
		t.Errorf("cached json changed: %s, want %s", got, cachedJSON)
	}
	// The layout is rendered per request
	if !strings.Contains(resp.Body.String(), "Log out") {
		t.Errorf("cached page lost the viewer navigation")
	}

	ts.Cache.Clear()
	resp = testutils.Get(ts.router, "/")
	body := resp.Body.String()
	first, second := strings.Index(body, "first post"), strings.Index(body, "second post")
	if first < 0 || second < 0 || second > first {
		t.Errorf("after clear: first at %d, second at %d", first, second)
	}
	if strings.Contains(body, "Log out") {
		t.Errorf("anonymous visitor got a logged in page")
	}
}

func TestIndexCacheExpires(t *testing.T) {
	ts := newTestSite(t)
	ts.IndexTTL = 20 * time.Millisecond
	alice := testutils.NewUser(t, ts.DB, "alice")

	page := decodePage(t, testutils.Get(ts.router, "/?format=json").Body.Bytes())
	if page.Count != 0 || page.NumPages != 1 || len(page.Posts) != 0 {
		t.Fatalf("empty index = %+v", page)
	}
	testutils.NewPost(t, ts.DB, alice, nil, "late post", 1000)
	page = decodePage(t, testutils.Get(ts.router, "/?format=json").Body.Bytes())
	if page.Count != 0 {
		t.Errorf("cached json changed: %+v", page)
	}
	time.Sleep(40 * time.Millisecond)
	page = decodePage(t, testutils.Get(ts.router, "/?format=json").Body.Bytes())
	if page.Count != 1 || len(page.Posts) != 1 || page.Posts[0].Text != "late post" || page.Posts[0].Author != "alice" {
		t.Errorf("expired json = %+v", page)
	}
}

func TestIndexPagination(t *testing.T) {
	ts := newTestSite(t)
	alice := testutils.NewUser(t, ts.DB, "alice")
	for i := 1; i <= 13; i++ {
		testutils.NewPost(t, ts.DB, alice, nil, fmt.Sprintf("post %02d", i), int64(i*1000))
	}

	tests := []struct {
		query    string
		number   int
		items    int
		firstTxt string
		hasNext  bool
		hasPrev  bool
	}{
		{"", 1, 10, "post 13", true, false},
		{"?page=1", 1, 10, "post 13", true, false},
		{"?page=2", 2, 3, "post 03", false, true},
		{"?page=99", 2, 3, "post 03", false, true},
		{"?page=0", 1, 10, "post 13", true, false},
		{"?page=abc", 1, 10, "post 13", true, false},
	}
	for _, tt := range tests {
		sep := "?"
		if tt.query != "" {
			sep = "&"
		}
		page := decodePage(t, testutils.Get(ts.router, "/"+tt.query+sep+"format=json").Body.Bytes())
		if page.Number != tt.number || len(page.Posts) != tt.items || page.NumPages != 2 || page.Count != 13 {
			t.Errorf("%q: page %d with %d posts of %d pages", tt.query, page.Number, len(page.Posts), page.NumPages)
			continue
		}
		if page.Posts[0].Text != tt.firstTxt || page.HasNext != tt.hasNext || page.HasPrevious != tt.hasPrev {
			t.Errorf("%q: first %q, next %v, previous %v", tt.query, page.Posts[0].Text, page.HasNext, page.HasPrevious)
		}
	}

	resp := testutils.Get(ts.router, "/?page=2")
	if !strings.Contains(resp.Body.String(), "Page 2 of 2") {
		t.Errorf("paginator missing from HTML page")
	}
}

func TestGroupPosts(t *testing.T) {
	ts := newTestSite(t)
	alice := testutils.NewUser(t, ts.DB, "alice")
	cats := testutils.NewGroup(t, ts.DB, "cats")
	dogs := testutils.NewGroup(t, ts.DB, "dogs")
	testutils.NewPost(t, ts.DB, alice, &cats, "meow", 1000)
	testutils.NewPost(t, ts.DB, alice, &dogs, "woof", 2000)
	testutils.NewPost(t, ts.DB, alice, nil, "nothing", 3000)

	resp := testutils.Get(ts.router, "/group/cats/")
	body := resp.Body.String()
	if resp.Code != http.StatusOK || !strings.Contains(body, "meow") || strings.Contains(body, "woof") || strings.Contains(body, "nothing") {
		t.Errorf("GET /group/cats/ = %d %s", resp.Code, body)
	}
	if !strings.Contains(body, "about cats") {
		t.Errorf("group description missing")
	}

	resp = testutils.Get(ts.router, "/group/dogs/?format=json")
	result := struct {
		Group web.GroupInfo `json:"group"`
		Page  web.PageInfo  `json:"page"`
	}{}
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Group.Slug != "dogs" || len(result.Page.Posts) != 1 || result.Page.Posts[0].Group != "dogs" {
		t.Errorf("dogs json = %+v", result)
	}
}

func TestProfile(t *testing.T) {
	ts := newTestSite(t)
	alice := testutils.NewUser(t, ts.DB, "alice")
	bob := testutils.NewUser(t, ts.DB, "bob")
	testutils.NewPost(t, ts.DB, alice, nil, "by alice", 1000)
	testutils.NewPost(t, ts.DB, bob, nil, "by bob", 2000)
	if err := models.FollowUser(ts.DB, bob.ID, alice.ID); err != nil {
		t.Fatal(err)
	}

	resp := testutils.Get(ts.router, "/alice/?format=json")
	profile := web.ProfileInfo{}
	if err := json.Unmarshal(resp.Body.Bytes(), &profile); err != nil {
		t.Fatal(err)
	}
	if profile.PostCount != 1 || profile.Followers != 1 || profile.Following != 0 || profile.IsFollowing {
		t.Errorf("anonymous profile = %+v", profile)
	}
	if len(profile.Page.Posts) != 1 || profile.Page.Posts[0].Text != "by alice" {
		t.Errorf("profile posts = %+v", profile.Page.Posts)
	}

	resp = testutils.Get(ts.router, "/alice/", ts.login(t, "bob"))
	body := resp.Body.String()
	if !strings.Contains(body, `href="/alice/unfollow/"`) || strings.Contains(body, "by bob") {
		t.Errorf("profile seen by a follower: %s", body)
	}
	resp = testutils.Get(ts.router, "/bob/", ts.login(t, "bob"))
	if strings.Contains(resp.Body.String(), `href="/bob/follow/"`) {
		t.Errorf("own profile offers to follow yourself")
	}
}

func TestFollowFeed(t *testing.T) {
	ts := newTestSite(t)
	alice := testutils.NewUser(t, ts.DB, "alice")
	bob := testutils.NewUser(t, ts.DB, "bob")
	carol := testutils.NewUser(t, ts.DB, "carol")
	testutils.NewPost(t, ts.DB, alice, nil, "alice writes", 1000)
	testutils.NewPost(t, ts.DB, carol, nil, "carol writes", 2000)
	cookies := ts.login(t, "bob")

	// Twice on purpose, the second one is a no-op
	for i := 0; i < 2; i++ {
		resp := testutils.Get(ts.router, "/alice/follow/", cookies)
		if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/alice/" {
			t.Fatalf("follow = %d %q", resp.Code, resp.Header().Get("Location"))
		}
	}
	if count, _ := models.FollowerCount(ts.DB, alice.ID); count != 1 {
		t.Errorf("alice has %d followers", count)
	}

	body := testutils.Get(ts.router, "/follow/", cookies).Body.String()
	if !strings.Contains(body, "alice writes") || strings.Contains(body, "carol writes") {
		t.Errorf("follow feed: %s", body)
	}
	// Nobody follows carol, her feed is empty
	body = testutils.Get(ts.router, "/follow/", ts.login(t, "carol")).Body.String()
	if !strings.Contains(body, "No posts yet.") {
		t.Errorf("carol's follow feed is not empty")
	}

	resp := testutils.Get(ts.router, "/bob/follow/", cookies)
	if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/bob/" {
		t.Errorf("self follow = %d %q", resp.Code, resp.Header().Get("Location"))
	}
	if following, _ := models.IsFollowing(ts.DB, bob.ID, bob.ID); following {
		t.Errorf("bob follows bob")
	}

	for i := 0; i < 2; i++ {
		resp = testutils.Get(ts.router, "/alice/unfollow/", cookies)
		if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/alice/" {
			t.Fatalf("unfollow = %d %q", resp.Code, resp.Header().Get("Location"))
		}
	}
	body = testutils.Get(ts.router, "/follow/", cookies).Body.String()
	if strings.Contains(body, "alice writes") {
		t.Errorf("unfollowed author still in the feed")
	}

	resp = testutils.Get(ts.router, "/nobody/follow/", cookies)
	if resp.Code != http.StatusNotFound {
		t.Errorf("follow unknown user = %d", resp.Code)
	}
}

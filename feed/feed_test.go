package feed_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"yatube/feed"
	"yatube/internal/testutils"
	"yatube/models"
)

func ids(page feed.Page) []uint64 {
	result := []uint64{}
	for _, p := range page.Items {
		result = append(result, p.ID)
	}
	return result
}

func TestHome_OrderAndPageSize(t *testing.T) {
	tx := testutils.NewDB(t)
	author := testutils.NewUser(t, tx, "author")
	// Insert out of chronological order on purpose
	created := []int64{5000, 1000, 13000, 7000, 2000, 11000, 3000, 9000, 4000, 12000, 6000, 10000, 8000}
	byTime := map[int64]uint64{}
	for _, ts := range created {
		byTime[ts] = testutils.NewPost(t, tx, author, nil, "post", ts).ID
	}
	want := []uint64{}
	for ts := int64(13000); ts >= 1000; ts -= 1000 {
		want = append(want, byTime[ts])
	}

	a := feed.New(tx, 10)
	first, err := a.Home(context.Background(), feed.NewestFirst, 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Home(context.Background(), feed.NewestFirst, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Items) != 10 || len(second.Items) != 3 {
		t.Fatalf("page sizes = %d, %d; want 10, 3", len(first.Items), len(second.Items))
	}
	if got := append(ids(first), ids(second)...); !reflect.DeepEqual(got, want) {
		t.Errorf("Home() order = %v, want %v", got, want)
	}
	if first.Items[0].Author.Username != "author" {
		t.Errorf("author was not preloaded")
	}
	if !first.HasNext() || first.HasPrevious() || second.HasNext() || !second.HasPrevious() {
		t.Errorf("navigation flags are wrong: %+v / %+v", first, second)
	}
}

func TestHome_TieBreak(t *testing.T) {
	tx := testutils.NewDB(t)
	author := testutils.NewUser(t, tx, "author")
	a1 := testutils.NewPost(t, tx, author, nil, "a1", 1000)
	b := testutils.NewPost(t, tx, author, nil, "b", 2000)
	a2 := testutils.NewPost(t, tx, author, nil, "a2", 1000)

	page, err := feed.New(tx, 10).Home(context.Background(), feed.NewestFirst, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := ids(page), []uint64{b.ID, a1.ID, a2.ID}; !reflect.DeepEqual(got, want) {
		t.Errorf("Home() = %v, want %v", got, want)
	}
	page, _ = feed.New(tx, 10).Home(context.Background(), feed.OldestFirst, 1)
	if got, want := ids(page), []uint64{a1.ID, a2.ID, b.ID}; !reflect.DeepEqual(got, want) {
		t.Errorf("Home(OldestFirst) = %v, want %v", got, want)
	}
}

func TestHome_Clamp(t *testing.T) {
	tx := testutils.NewDB(t)
	author := testutils.NewUser(t, tx, "author")
	for i := int64(1); i <= 13; i++ {
		testutils.NewPost(t, tx, author, nil, "post", i*1000)
	}
	a := feed.New(tx, 10)
	tests := []struct {
		number   int
		wantPage int
		wantLen  int
	}{
		{-1, 1, 10},
		{0, 1, 10},
		{2, 2, 3},
		{50, 2, 3},
	}
	for _, tt := range tests {
		page, err := a.Home(context.Background(), feed.NewestFirst, tt.number)
		if err != nil {
			t.Fatal(err)
		}
		if page.Number != tt.wantPage || len(page.Items) != tt.wantLen {
			t.Errorf("Home(page %d) = page %d with %d items, want page %d with %d", tt.number, page.Number, len(page.Items), tt.wantPage, tt.wantLen)
		}
	}
}

func TestGroup(t *testing.T) {
	tx := testutils.NewDB(t)
	author := testutils.NewUser(t, tx, "author")
	cats := testutils.NewGroup(t, tx, "cats")
	dogs := testutils.NewGroup(t, tx, "dogs")
	meow := testutils.NewPost(t, tx, author, &cats, "meow", 1000)
	woof := testutils.NewPost(t, tx, author, &dogs, "woof", 2000)
	testutils.NewPost(t, tx, author, nil, "no group", 3000)

	a := feed.New(tx, 10)
	tests := []struct {
		slug string
		want []uint64
	}{
		{"cats", []uint64{meow.ID}},
		{"dogs", []uint64{woof.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			result, err := a.Group(context.Background(), tt.slug, feed.NewestFirst, 1)
			if err != nil {
				t.Fatal(err)
			}
			if result.Group.Slug != tt.slug {
				t.Errorf("Group = %q", result.Group.Slug)
			}
			if got := ids(result.Page); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Group(%s) = %v, want %v", tt.slug, got, tt.want)
			}
		})
	}
	if _, err := a.Group(context.Background(), "birds", feed.NewestFirst, 1); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Group(unknown) = %v, want ErrNotFound", err)
	}
}

func TestProfile(t *testing.T) {
	tx := testutils.NewDB(t)
	author := testutils.NewUser(t, tx, "author")
	fan := testutils.NewUser(t, tx, "fan")
	other := testutils.NewUser(t, tx, "other")
	mine := testutils.NewPost(t, tx, author, nil, "mine", 1000)
	testutils.NewPost(t, tx, other, nil, "not mine", 2000)
	if err := models.FollowUser(tx, fan.ID, author.ID); err != nil {
		t.Fatal(err)
	}
	if err := models.FollowUser(tx, author.ID, other.ID); err != nil {
		t.Fatal(err)
	}

	a := feed.New(tx, 10)
	tests := []struct {
		name            string
		viewer          uint64
		wantIsFollowing bool
	}{
		{"anonymous", 0, false},
		{"fan", fan.ID, true},
		{"other", other.ID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := a.Profile(context.Background(), "author", tt.viewer, feed.NewestFirst, 1)
			if err != nil {
				t.Fatal(err)
			}
			if got := ids(result.Page); !reflect.DeepEqual(got, []uint64{mine.ID}) {
				t.Errorf("posts = %v, want [%d]", got, mine.ID)
			}
			if result.PostCount != 1 || result.Followers != 1 || result.Following != 1 {
				t.Errorf("counts = %d posts, %d followers, %d following", result.PostCount, result.Followers, result.Following)
			}
			if result.IsFollowing != tt.wantIsFollowing {
				t.Errorf("IsFollowing = %v, want %v", result.IsFollowing, tt.wantIsFollowing)
			}
		})
	}
	if _, err := a.Profile(context.Background(), "nobody", 0, feed.NewestFirst, 1); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Profile(unknown) = %v, want ErrNotFound", err)
	}
}

func TestPersonal(t *testing.T) {
	tx := testutils.NewDB(t)
	reader := testutils.NewUser(t, tx, "reader")
	x := testutils.NewUser(t, tx, "x")
	y := testutils.NewUser(t, tx, "y")
	x1 := testutils.NewPost(t, tx, x, nil, "x1", 1000)
	testutils.NewPost(t, tx, y, nil, "y1", 2000)
	x2 := testutils.NewPost(t, tx, x, nil, "x2", 3000)
	testutils.NewPost(t, tx, reader, nil, "own", 4000)

	a := feed.New(tx, 10)
	page, err := a.Personal(context.Background(), reader.ID, feed.NewestFirst, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 0 || page.Number != 1 {
		t.Errorf("Personal() before following = %v", ids(page))
	}

	if err = models.FollowUser(tx, reader.ID, x.ID); err != nil {
		t.Fatal(err)
	}
	page, err = a.Personal(context.Background(), reader.ID, feed.NewestFirst, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := ids(page), []uint64{x2.ID, x1.ID}; !reflect.DeepEqual(got, want) {
		t.Errorf("Personal() = %v, want %v", got, want)
	}

	if err = models.UnfollowUser(tx, reader.ID, x.ID); err != nil {
		t.Fatal(err)
	}
	page, _ = a.Personal(context.Background(), reader.ID, feed.NewestFirst, 1)
	if len(page.Items) != 0 {
		t.Errorf("Personal() after unfollow = %v", ids(page))
	}
}

func TestOrder(t *testing.T) {
	tx := testutils.NewDB(t)
	author := testutils.NewUser(t, tx, "author")
	cats := testutils.NewGroup(t, tx, "cats")
	// The older post gets the higher id, so insertion order is no help
	newer := testutils.NewPost(t, tx, author, &cats, "newer", 2000)
	older := testutils.NewPost(t, tx, author, &cats, "older", 1000)

	a := feed.New(tx, 10)
	tests := []struct {
		name  string
		order feed.Order
		want  []uint64
	}{
		{"newest first", feed.NewestFirst, []uint64{newer.ID, older.ID}},
		{"oldest first", feed.OldestFirst, []uint64{older.ID, newer.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home, err := a.Home(context.Background(), tt.order, 1)
			if err != nil {
				t.Fatal(err)
			}
			if got := ids(home); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Home() = %v, want %v", got, tt.want)
			}
			group, err := a.Group(context.Background(), "cats", tt.order, 1)
			if err != nil {
				t.Fatal(err)
			}
			if got := ids(group.Page); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Group() = %v, want %v", got, tt.want)
			}
			profile, err := a.Profile(context.Background(), "author", 0, tt.order, 1)
			if err != nil {
				t.Fatal(err)
			}
			if got := ids(profile.Page); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Profile() = %v, want %v", got, tt.want)
			}
		})
	}
}

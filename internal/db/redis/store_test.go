package redis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/photodex/internal/db"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

func TestContainsIgnoreCase(t *testing.T) {
	tests := []struct {
		s, sub string
		want   bool
	}{
		{"Index Already Exists", "index already exists", true},
		{"UNKNOWN INDEX NAME", "unknown index name", true},
		{"hello world", "world", true},
		{"short", "longer than input", false},
		{"exact", "exact", true},
		{"", "", true},
		{"notempty", "", true},
	}
	for _, tc := range tests {
		got := containsIgnoreCase(tc.s, tc.sub)
		if got != tc.want {
			t.Errorf("containsIgnoreCase(%q, %q) = %v, want %v", tc.s, tc.sub, got, tc.want)
		}
	}
}

// --- hash.go tests ---

func TestHSet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET" && cmd[1] == "photo:1"
		})).
		Return(mock.Result(mock.RedisInt64(2)))

	s := NewStoreForTest(c)
	err := s.HSet(context.Background(), "photo:1", map[string]string{"labels": "cat,dog"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHSet_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	err := s.HSet(context.Background(), "photo:1", map[string]string{"a": "b"})
	if err == nil {
		t.Fatal("expected error")
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpHSet {
		t.Errorf("expected db.Error with op HSET, got %v", err)
	}
}

func TestHGetAll_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "photo:1")).
		Return(mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
			"object_key": mock.RedisString("photos/dog.jpg"),
			"labels":     mock.RedisString("dog,pet"),
		})))

	s := NewStoreForTest(c)
	m, err := s.HGetAll(context.Background(), "photo:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m["object_key"] != "photos/dog.jpg" {
		t.Errorf("unexpected fields: %v", m)
	}
}

func TestDel_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "photo:1")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c)
	if err := s.Del(context.Background(), "photo:1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("EXISTS", "photo:1")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c)
	exists, err := s.Exists(context.Background(), "photo:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected true")
	}
}

func TestScan_SinglePage(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	// SCAN returns [cursor, [elements...]]
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(0), // cursor=0 means done
			mock.RedisArray(mock.RedisString("key1"), mock.RedisString("key2")),
		)))

	s := NewStoreForTest(c)
	keys, err := s.Scan(context.Background(), "photodex:*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
}

// --- index.go tests ---

func TestCreateIndex_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.CREATE" && cmd[1] == "photos-idx"
		})).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	def, err := db.NewIndex("photos-idx").
		Prefix("photodex:photos:").
		TagWithOpts("labels", ",", false).
		Tag("bucket").
		Build()
	if err != nil {
		t.Fatalf("build definition: %v", err)
	}
	if err := s.CreateIndex(context.Background(), def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.CREATE"
		})).
		Return(mock.ErrorResult(errors.New("Index already exists")))

	s := NewStoreForTest(c)
	def := &db.IndexDefinition{
		Name:   "photos-idx",
		Fields: []db.IndexField{{Name: "labels", Type: db.IndexFieldTag}},
	}
	// Mock errors are not typed Redis errors, so the wrapped error path is expected.
	if err := s.CreateIndex(context.Background(), def); err == nil {
		t.Fatal("expected error")
	}
}

func TestIndexExists_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.INFO"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if _, err := s.IndexExists(context.Background(), "photos-idx"); err == nil {
		t.Fatal("expected error")
	}
}

func TestBuildCreateArgs(t *testing.T) {
	def, err := db.NewIndex("photos-idx").
		Prefix("photodex:photos:").
		TagWithOpts("labels", ",", false).
		Tag("bucket").
		Build()
	if err != nil {
		t.Fatalf("build definition: %v", err)
	}

	args, err := buildCreateArgs(def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertContains(t, args, "photos-idx")
	assertContains(t, args, "PREFIX")
	assertContains(t, args, "photodex:photos:")
	assertContains(t, args, "SCHEMA")
	assertContains(t, args, "labels")
	assertContains(t, args, "SEPARATOR")
	assertContains(t, args, ",")
	assertContains(t, args, "bucket")
}

func TestBuildCreateArgs_Validation(t *testing.T) {
	if _, err := buildCreateArgs(&db.IndexDefinition{}); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := buildCreateArgs(&db.IndexDefinition{Name: "idx"}); err == nil {
		t.Error("expected error for no fields")
	}
}

func assertContains(t *testing.T, args []string, want string) {
	t.Helper()
	for _, a := range args {
		if a == want {
			return
		}
	}
	t.Errorf("expected %q in args %v", want, args)
}

// --- search.go tests ---

func TestSearchTags_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH" && cmd[1] == "photos-idx" &&
				cmd[2] == "@labels:{cat} @labels:{outdoor}"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(1), // total
			mock.RedisString("photodex:photos:albums/cat.jpg"),
			mock.RedisArray(
				mock.RedisString("object_key"),
				mock.RedisString("albums/cat.jpg"),
				mock.RedisString("labels"),
				mock.RedisString("cat,outdoor"),
			),
		)))

	s := NewStoreForTest(c)
	result, err := s.SearchTags(context.Background(), &db.TagQuery{
		IndexName: "photos-idx",
		Clauses: []db.TagClause{
			{Field: "labels", Value: "cat"},
			{Field: "labels", Value: "outdoor"},
		},
		Limit: 25,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected total 1, got %d", result.Total)
	}
	if result.Entries[0].Fields["labels"] != "cat,outdoor" {
		t.Errorf("unexpected entry fields: %v", result.Entries[0].Fields)
	}
}

func TestSearchTags_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH"
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStoreForTest(c)
	result, err := s.SearchTags(context.Background(), &db.TagQuery{
		IndexName: "photos-idx",
		Clauses:   []db.TagClause{{Field: "labels", Value: "unicorn"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(result.Entries))
	}
}

func TestSearchTags_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.SearchTags(context.Background(), &db.TagQuery{
		IndexName: "photos-idx",
		Clauses:   []db.TagClause{{Field: "labels", Value: "cat"}},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpSearch {
		t.Errorf("expected db.Error with op FT.SEARCH, got %v", err)
	}
}

func TestSearchTags_Validation(t *testing.T) {
	s := &Store{}
	ctx := context.Background()

	if _, err := s.SearchTags(ctx, &db.TagQuery{Clauses: []db.TagClause{{Field: "labels", Value: "x"}}}); err == nil {
		t.Error("expected error for empty index name")
	}
	if _, err := s.SearchTags(ctx, &db.TagQuery{IndexName: "idx"}); err == nil {
		t.Error("expected error for no clauses")
	}
}

func TestSearchCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH" && cmd[len(cmd)-1] == "0"
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(7))))

	s := NewStoreForTest(c)
	n, err := s.SearchCount(context.Background(), "photos-idx", "*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Errorf("expected 7, got %d", n)
	}
}

func TestBuildTagQuery_EscapesValues(t *testing.T) {
	q := buildTagQuery([]db.TagClause{
		{Field: "labels", Value: "golden retriever"},
		{Field: "bucket", Value: "my-photos"},
	})
	if !strings.Contains(q, `@labels:{golden\ retriever}`) {
		t.Errorf("expected escaped space in %q", q)
	}
	if !strings.Contains(q, `@bucket:{my\-photos}`) {
		t.Errorf("expected escaped hyphen in %q", q)
	}
}

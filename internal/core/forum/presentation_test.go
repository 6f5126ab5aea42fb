package forum

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Forumul/internal/core/posts"
)

func titles(list []posts.Post) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.Title)
	}
	return out
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    SortMode
		wantErr bool
	}{
		{name: "empty defaults to newest", raw: "", want: SortNewest},
		{name: "newest", raw: "newest", want: SortNewest},
		{name: "popular", raw: "popular", want: SortPopular},
		{name: "case and whitespace", raw: "  Popular ", want: SortPopular},
		{name: "unknown", raw: "oldest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSortMode(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDerivePresentation_SortsByMode(t *testing.T) {
	a := testPost(1, "A", 3, baseTime)
	b := testPost(2, "B", 5, baseTime.Add(time.Hour))
	raw := []*posts.Post{a, b}

	assert.Equal(t, []string{"B", "A"}, titles(DerivePresentation(raw, "", SortNewest)))
	assert.Equal(t, []string{"B", "A"}, titles(DerivePresentation(raw, "", SortPopular)))
}

func TestDerivePresentation_PopularIsStable(t *testing.T) {
	raw := []*posts.Post{
		testPost(1, "first", 2, baseTime.Add(3*time.Hour)),
		testPost(2, "second", 7, baseTime.Add(2*time.Hour)),
		testPost(3, "third", 2, baseTime.Add(time.Hour)),
		testPost(4, "fourth", 2, baseTime),
	}

	got := DerivePresentation(raw, "", SortPopular)
	assert.Equal(t, []string{"second", "first", "third", "fourth"}, titles(got))
}

func TestDerivePresentation_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	raw := []*posts.Post{
		testPost(1, "Go Generics", 0, baseTime),
		testPost(2, "Rust traits", 0, baseTime.Add(time.Minute)),
		testPost(3, "Why I love GOlang", 0, baseTime.Add(2*time.Minute)),
	}

	got := DerivePresentation(raw, "go", SortNewest)
	assert.Equal(t, []string{"Why I love GOlang", "Go Generics"}, titles(got))

	// the term is matched as typed, surrounding spaces included
	assert.Empty(t, DerivePresentation(raw, " go ", SortNewest))
}

func TestDerivePresentation_DoesNotMutateRaw(t *testing.T) {
	raw := []*posts.Post{
		testPost(1, "old", 9, baseTime),
		testPost(2, "new", 1, baseTime.Add(time.Hour)),
	}

	got := DerivePresentation(raw, "", SortNewest)
	got[0].Upvotes = 100

	assert.Equal(t, int64(1), raw[0].ID)
	assert.Equal(t, 1, raw[1].Upvotes)
}

func TestDerivePresentation_Properties(t *testing.T) {
	raw := []*posts.Post{
		testPost(1, "alpha", 4, baseTime),
		testPost(2, "Beta", 4, baseTime.Add(time.Hour)),
		testPost(3, "gamma alpha", 1, baseTime.Add(2*time.Hour)),
		testPost(4, "delta", 9, baseTime.Add(3*time.Hour)),
	}

	for _, term := range []string{"", "a", "ALPHA", "zzz"} {
		for _, mode := range []SortMode{SortNewest, SortPopular} {
			got := DerivePresentation(raw, term, mode)

			assert.LessOrEqual(t, len(got), len(raw))
			for _, p := range got {
				assert.Contains(t, strings.ToLower(p.Title), strings.ToLower(term))
			}
			for i := 1; i < len(got); i++ {
				if mode == SortPopular {
					assert.GreaterOrEqual(t, got[i-1].Upvotes, got[i].Upvotes)
				} else {
					assert.False(t, got[i-1].CreatedAt.Before(got[i].CreatedAt))
				}
			}
		}
	}

	assert.Len(t, DerivePresentation(raw, "", SortNewest), len(raw))
}

func TestPresentation_EmptyMessage(t *testing.T) {
	assert.Equal(t, "No posts yet", Presentation{}.EmptyMessage())
	assert.Equal(t, `No posts found for "cats"`, Presentation{SearchTerm: "cats", Total: 3}.EmptyMessage())
	assert.Empty(t, Presentation{Posts: []posts.Post{*testPost(1, "x", 0, baseTime)}, Total: 1}.EmptyMessage())
}

func TestPreviewContent(t *testing.T) {
	assert.Empty(t, PreviewContent(nil))
	assert.Equal(t, "short", PreviewContent(strPtr("short")))

	long := strings.Repeat("é", 200)
	got := PreviewContent(&long)
	assert.Equal(t, strings.Repeat("é", 150)+"...", got)
}

func TestPresentation_Summaries(t *testing.T) {
	p := testPost(7, "hello", 2, baseTime)
	p.Content = strPtr("body")
	pres := Presentation{Posts: []posts.Post{*p}, Total: 1}

	got := pres.Summaries(baseTime.Add(90 * time.Minute))
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, "body", got[0].Preview)
	assert.Equal(t, "1 hours ago", got[0].PostedAgo)
}

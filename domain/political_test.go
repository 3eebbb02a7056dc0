package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPolitical(t *testing.T) {
	tests := map[string]struct {
		title       string
		description string
		want        bool
	}{
		"keyword in title":               {title: "Senate passes budget", want: true},
		"keyword in description":         {title: "Morning update", description: "The White House said on Monday", want: true},
		"case insensitive":               {title: "ELECTION night recap", want: true},
		"substring match":                {title: "Voters head to the polls", description: "turnout for the vote was high", want: true},
		"no keyword":                     {title: "Local team wins championship", description: "A great season", want: false},
		"empty strings":                  {want: false},
		"multi word keyword split apart": {title: "White paper on the house market", want: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsPolitical(tc.title, tc.description))
		})
	}
}

func article(title, url string) Article {
	return Article{Title: title, URL: url}
}

func TestRankPoliticalFirst_PoliticalBeforeOthers(t *testing.T) {
	// 8 candidates, political at positions 2, 5, 7 (1-based).
	candidates := []Article{
		article("Weather today", "https://e.com/1"),
		article("Congress debates bill", "https://e.com/2"),
		article("Sports roundup", "https://e.com/3"),
		article("Recipe of the week", "https://e.com/4"),
		article("Election results are in", "https://e.com/5"),
		article("Travel tips", "https://e.com/6"),
		article("New policy on tariffs", "https://e.com/7"),
		article("Movie reviews", "https://e.com/8"),
	}

	got := RankPoliticalFirst(candidates, MaxBatchSize)

	urls := make([]string, 0, len(got))
	for _, a := range got {
		urls = append(urls, a.URL)
	}
	assert.Equal(t, []string{
		"https://e.com/2", "https://e.com/5", "https://e.com/7",
		"https://e.com/1", "https://e.com/3",
	}, urls)
	assert.True(t, got[0].Political)
	assert.True(t, got[2].Political)
	assert.False(t, got[3].Political)
}

func TestRankPoliticalFirst_MorePoliticalThanLimit(t *testing.T) {
	var candidates []Article
	for i := 0; i < 7; i++ {
		candidates = append(candidates, article(fmt.Sprintf("Trump story %d", i), fmt.Sprintf("https://e.com/%d", i)))
	}
	candidates = append(candidates, article("Cooking", "https://e.com/cook"))

	got := RankPoliticalFirst(candidates, MaxBatchSize)

	assert.Len(t, got, MaxBatchSize)
	for i, a := range got {
		assert.True(t, a.Political)
		assert.Equal(t, fmt.Sprintf("https://e.com/%d", i), a.URL)
	}
}

func TestRankPoliticalFirst_NoPolitical(t *testing.T) {
	candidates := []Article{
		article("A", "https://e.com/a"),
		article("B", "https://e.com/b"),
	}

	got := RankPoliticalFirst(candidates, MaxBatchSize)

	assert.Equal(t, []Article{
		{Title: "A", URL: "https://e.com/a"},
		{Title: "B", URL: "https://e.com/b"},
	}, got)
}

func TestRankPoliticalFirst_DropsMalformedAndDuplicates(t *testing.T) {
	candidates := []Article{
		article("", "https://e.com/no-title"),
		article("No url", ""),
		article("Senate vote", "https://e.com/dup"),
		article("Senate vote again", "https://e.com/dup"),
		article("Other", "https://e.com/other"),
	}

	got := RankPoliticalFirst(candidates, MaxBatchSize)

	assert.Len(t, got, 2)
	assert.Equal(t, "Senate vote", got[0].Title)
	assert.Equal(t, "Other", got[1].Title)
}

func TestRankPoliticalFirst_Empty(t *testing.T) {
	assert.Empty(t, RankPoliticalFirst(nil, MaxBatchSize))
	assert.Empty(t, RankPoliticalFirst([]Article{article("Vote", "https://e.com")}, 0))
}

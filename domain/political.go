package domain

import "strings"

// PoliticalKeywords are matched as lower-case substrings of title and description.
var PoliticalKeywords = []string{
	"politics",
	"government",
	"congress",
	"senate",
	"white house",
	"biden",
	"trump",
	"election",
	"democrat",
	"republican",
	"campaign",
	"vote",
	"legislation",
	"policy",
}

// IsPolitical reports whether title or description mentions any political keyword.
func IsPolitical(title, description string) bool {
	t := strings.ToLower(title)
	d := strings.ToLower(description)
	for _, kw := range PoliticalKeywords {
		if strings.Contains(t, kw) || strings.Contains(d, kw) {
			return true
		}
	}
	return false
}

// RankPoliticalFirst classifies candidates and returns at most limit of them:
// every political article in original order, then non-political ones in
// original order until the limit is reached. Malformed candidates and repeated
// URLs are dropped.
func RankPoliticalFirst(candidates []Article, limit int) []Article {
	if limit <= 0 {
		return []Article{}
	}

	seen := make(map[string]struct{}, len(candidates))
	var political, other []Article
	for _, a := range candidates {
		if !a.WellFormed() {
			continue
		}
		if _, dup := seen[a.URL]; dup {
			continue
		}
		seen[a.URL] = struct{}{}

		a.Political = IsPolitical(a.Title, a.Description)
		if a.Political {
			political = append(political, a)
		} else {
			other = append(other, a)
		}
	}

	ranked := make([]Article, 0, limit)
	ranked = append(ranked, political...)
	for _, a := range other {
		if len(ranked) >= limit {
			break
		}
		ranked = append(ranked, a)
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

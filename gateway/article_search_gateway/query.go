package article_search_gateway

import "strings"

// removedTitle marks NewsAPI items whose content was taken down.
const removedTitle = "[Removed]"

// KeywordQuery joins keywords with OR, quoting multi-word phrases.
func KeywordQuery(keywords []string) string {
	terms := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if strings.ContainsAny(kw, " \t") {
			kw = `"` + kw + `"`
		}
		terms = append(terms, kw)
	}
	return strings.Join(terms, " OR ")
}

func siteQuery(domain string) string {
	return "site:" + domain
}

// Package classify maps merchant names from the statement to spending
// categories and recurring subscriptions.
package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var groceryChains = map[string]bool{
	"supermago":      true,
	"bourbon":        true,
	"supermagoporto": true,
	"zaffari":        true,
	"carrefour":      true,
}

// rule is a single check against the lower-cased name and its first word.
type rule struct {
	label string
	match func(name, first string) bool
}

// Rules are evaluated in order, first match wins.
var categoryRules = []rule{
	{"mercado", func(_, first string) bool { return groceryChains[first] }},
	{"ifood", func(name, first string) bool { return strings.HasPrefix(name, "ifd") || first == "ifood" }},
	{"mercadolivre", prefix("mercadolivre")},
	{"gasolina", func(name, _ string) bool {
		return strings.Contains(name, "poa jardim b") || strings.Contains(name, "grupolan") || strings.HasPrefix(name, "posto")
	}},
	{"farmacia", func(name, _ string) bool { return strings.HasPrefix(name, "raia") || strings.Contains(name, "panvel") }},
}

var subscriptionRules = []rule{
	{"netflix", prefix("netflix")},
	{"ifood", func(name, _ string) bool { return strings.HasPrefix(name, "ifd") && strings.Contains(name, "agencia") }},
	{"youtube", contains("youtubepremium")},
	{"max", contains("helpmax")},
	{"twitch", contains("xsolla")},
	{"totalpass", contains("totalpass")},
	{"gamepass", func(name, _ string) bool {
		return strings.Contains(name, "microsoft") && (strings.Contains(name, "console") || strings.Contains(name, "ppro"))
	}},
	{"openai", contains("openai")},
	{"debrid", contains("debrid")},
	{"spotify", contains("spotify")},
}

func prefix(p string) func(string, string) bool {
	return func(name, _ string) bool { return strings.HasPrefix(name, p) }
}

func contains(sub string) func(string, string) bool {
	return func(name, _ string) bool { return strings.Contains(name, sub) }
}

func split(name string) (lower, first string) {
	lower = cases.Lower(language.BrazilianPortuguese).String(name)
	if fields := strings.Fields(lower); len(fields) > 0 {
		first = fields[0]
	}
	return lower, first
}

// Category consolidates a merchant into a spending category. Unknown
// merchants fall back to their first word, lower-cased.
func Category(name string) string {
	lower, first := split(name)
	for _, r := range categoryRules {
		if r.match(lower, first) {
			return r.label
		}
	}
	return first
}

// Subscription returns the recurring service a merchant belongs to, if any.
func Subscription(name string) (string, bool) {
	lower, first := split(name)
	for _, r := range subscriptionRules {
		if r.match(lower, first) {
			return r.label, true
		}
	}
	return "", false
}

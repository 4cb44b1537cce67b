// Package intent turns free-text shopping utterances into structured
// filters, ordinal references and command classes. Extraction never
// fails: unrecognized input degrades to the fallback class.
package intent

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Filter is the structured shopping intent extracted from an utterance
type Filter struct {
	Keywords []string
	MinPrice float64
	MaxPrice float64
	Age      int
	Gender   string
	Occasion string
	Theme    string
}

const maxKeywords = 8

var (
	underPriceRegex   = regexp.MustCompile(`(?i)(?:under|below|less than|within)\s*(?:rs\.?|inr|₹)?\s*(\d{2,6})`)
	betweenPriceRegex = regexp.MustCompile(`(?i)between\s*(?:rs\.?|inr|₹)?\s*(\d{2,6})\s*(?:and|-|to)\s*(?:rs\.?|inr|₹)?\s*(\d{2,6})`)
	ageRegex          = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:year|yr|yrs|yo)s?\b`)
	maleRegex         = regexp.MustCompile(`(?i)\b(?:boy|male|man|husband|boyfriend|dad|father|brother|grandpa|grandfather)\b`)
	femaleRegex       = regexp.MustCompile(`(?i)\b(?:girl|female|woman|wife|girlfriend|mom|mother|sister|grandma|grandmother)\b`)
	occasionRegex     = regexp.MustCompile(`(?i)\b(birthday|anniversary|engagement|wedding|valentines?|christmas|new year|diwali|rakhi|holi|festival)\b`)
	themeRegex        = regexp.MustCompile(`(?i)\b(superhero|romantic|floral|personalized|cute|funny|edible|luxury|budget|eco|handmade)\b`)
	wordSplitRegex    = regexp.MustCompile(`[^a-z0-9]+`)
)

// stopwords excluded from residual keyword extraction. The catalog
// nouns and browse verbs live here too, so a plain listing request
// ("show products") parses to a zero filter instead of a keyword
// search for its own trigger words.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "gift": true,
	"gifts": true, "present": true, "idea": true, "ideas": true,
	"show": true, "give": true, "want": true, "need": true, "find": true,
	"some": true, "something": true, "under": true, "below": true,
	"between": true, "suggest": true, "recommend": true, "old": true,
	"year": true, "years": true, "please": true,
	"product": true, "products": true, "item": true, "items": true,
	"list": true, "browse": true, "catalog": true, "option": true,
	"options": true, "collection": true, "view": true, "see": true,
	"display": true, "get": true, "menu": true, "all": true,
}

// ParseFilter extracts price bounds, recipient attributes and residual
// keywords from a free-text utterance. Missing bounds default to
// [0, +inf).
func ParseFilter(text string) Filter {
	lower := strings.ToLower(strings.TrimSpace(text))
	out := Filter{MinPrice: 0, MaxPrice: math.Inf(1)}

	if m := betweenPriceRegex.FindStringSubmatch(lower); m != nil {
		out.MinPrice, _ = strconv.ParseFloat(m[1], 64)
		out.MaxPrice, _ = strconv.ParseFloat(m[2], 64)
	} else if m := underPriceRegex.FindStringSubmatch(lower); m != nil {
		out.MaxPrice, _ = strconv.ParseFloat(m[1], 64)
	}

	if m := ageRegex.FindStringSubmatch(lower); m != nil {
		out.Age, _ = strconv.Atoi(m[1])
	}

	if maleRegex.MatchString(lower) {
		out.Gender = "male"
	} else if femaleRegex.MatchString(lower) {
		out.Gender = "female"
	}

	if m := occasionRegex.FindStringSubmatch(lower); m != nil {
		out.Occasion = strings.ToLower(m[1])
	}

	if m := themeRegex.FindStringSubmatch(lower); m != nil {
		out.Theme = strings.ToLower(m[1])
	}

	for _, w := range wordSplitRegex.Split(lower, -1) {
		if len(w) <= 2 || stopwords[w] {
			continue
		}
		if _, err := strconv.Atoi(w); err == nil {
			continue
		}
		out.Keywords = append(out.Keywords, w)
		if len(out.Keywords) == maxKeywords {
			break
		}
	}

	return out
}

// Tags returns the tag terms a catalog search should match against
func (f Filter) Tags() []string {
	var tags []string
	if f.Theme != "" {
		tags = append(tags, f.Theme)
	}
	if f.Occasion != "" {
		tags = append(tags, f.Occasion)
	}
	if f.Gender != "" {
		tags = append(tags, f.Gender)
	}
	if f.Age > 0 {
		tags = append(tags, "age:"+strconv.Itoa(f.Age), "kids")
	}
	return tags
}

// Bounded reports whether the filter carries a finite price ceiling
func (f Filter) Bounded() bool {
	return !math.IsInf(f.MaxPrice, 1)
}

// IsZero reports whether the filter constrains nothing
func (f Filter) IsZero() bool {
	return len(f.Keywords) == 0 && f.MinPrice == 0 && !f.Bounded() &&
		f.Age == 0 && f.Gender == "" && f.Occasion == "" && f.Theme == ""
}

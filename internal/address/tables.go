package address

import "strings"

// preDirectionals maps abbreviated cardinal directions to their long form
var preDirectionals = map[string]string{
	"n": "North",
	"s": "South",
	"e": "East",
	"w": "West",
}

// cardinals are the long forms, lower-cased
var cardinals = map[string]string{
	"north": "North",
	"south": "South",
	"east":  "East",
	"west":  "West",
}

// postTypes maps street type abbreviations to their long form
var postTypes = map[string]string{
	"rd":   "Road",
	"cres": "Crescent",
	"cv":   "Cove",
	"dr":   "Drive",
	"aly":  "Alley",
	"st":   "Street",
	"pkwy": "Parkway",
	"cir":  "Circle",
	"blvd": "Boulevard",
	"cmp":  "Compound",
	"pl":   "Place",
	"ave":  "Avenue",
	"ter":  "Terrace",
	"cm":   "Common",
	"hwy":  "Highway",
	"ln":   "Lane",
	"cmpd": "Compound",
	"sq":   "Square",
	"ct":   "Court",
}

// directionalTokens are recognised as a street's leading directional when
// splitting a road span; only preDirectionals and cardinals can be normalized.
var directionalTokens = map[string]bool{
	"n": true, "s": true, "e": true, "w": true,
	"ne": true, "nw": true, "se": true, "sw": true,
	"north": true, "south": true, "east": true, "west": true,
	"northeast": true, "northwest": true, "southeast": true, "southwest": true,
}

// extraPostTypeTokens are street types recognised when splitting but left
// unmodified by normalization.
var extraPostTypeTokens = map[string]bool{
	"way": true, "trl": true, "trail": true, "loop": true, "run": true,
	"path": true, "pass": true, "plz": true, "plaza": true, "xing": true,
	"crossing": true, "row": true, "walk": true, "sqr": true, "expy": true,
	"fwy": true, "tpke": true, "av": true, "str": true, "bl": true,
}

func cleanToken(token string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(token)), ".", "")
}

func isDirectionalToken(token string) bool {
	return directionalTokens[cleanToken(token)]
}

func isPostTypeToken(token string) bool {
	t := cleanToken(token)
	if _, ok := postTypes[t]; ok {
		return true
	}
	for _, long := range postTypes {
		if strings.ToLower(long) == t {
			return true
		}
	}
	return extraPostTypeTokens[t]
}

// NormalizePreDirectional returns the long form of a pre-directional token.
// ok is false when the token is in neither the abbreviation nor the
// long-form table.
func NormalizePreDirectional(token string) (normalized string, ok bool) {
	t := cleanToken(token)
	if long, found := preDirectionals[t]; found {
		return long, true
	}
	if long, found := cardinals[t]; found {
		return long, true
	}
	return token, false
}

// NormalizePostType returns the long form of a street type. Tokens already
// in long form are returned title-cased; unknown tokens are returned as given.
func NormalizePostType(token string) string {
	t := cleanToken(token)
	if long, found := postTypes[t]; found {
		return long
	}
	for _, long := range postTypes {
		if strings.ToLower(long) == t {
			return long
		}
	}
	return token
}

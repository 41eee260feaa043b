package utils

import (
	"fmt"
	"strings"
)

// materialAliases maps a search keyword to the catalog wording it should also match
var materialAliases = map[string][]string{
	"marble":   {"marble", "italian marble", "stone"},
	"granite":  {"granite", "countertop", "stone"},
	"wood":     {"wood", "hardwood", "engineered wood", "timber", "teak"},
	"tile":     {"tile", "tiles", "ceramic", "vitrified"},
	"paint":    {"paint", "textured paint", "emulsion", "finish"},
	"door":     {"door", "doors", "hardwood doors"},
	"window":   {"window", "windows", "upvc", "glass"},
	"counter":  {"countertop", "counter", "granite"},
	"bath":     {"bathroom", "tiles", "sanitary"},
	"floor":    {"flooring", "floor"},
	"kitchen":  {"kitchen", "countertop", "modular"},
	"premium":  {"premium", "luxury", "designer"},
	"upvc":     {"upvc", "window"},
	"laminate": {"laminate", "engineered wood"},
}

// FuzzyMatchMaterial performs fuzzy matching of a search term against material text
// (name or description). Returns true if the term or one of its aliases occurs.
func FuzzyMatchMaterial(searchTerm, text string) bool {
	searchLower := strings.ToLower(strings.TrimSpace(searchTerm))
	textLower := strings.ToLower(strings.TrimSpace(text))

	if searchLower == "" {
		return true
	}

	// Contains match
	if strings.Contains(textLower, searchLower) {
		return true
	}

	for key, values := range materialAliases {
		if !strings.Contains(searchLower, key) {
			continue
		}
		for _, alias := range values {
			if strings.Contains(textLower, alias) {
				return true
			}
		}
	}

	return false
}

// MaterialPatterns returns the ILIKE patterns a search term expands to
func MaterialPatterns(term string) []string {
	termLower := strings.ToLower(strings.TrimSpace(term))
	if termLower == "" {
		return nil
	}

	patterns := []string{termLower}
	for key, values := range materialAliases {
		if strings.Contains(termLower, key) {
			patterns = append(patterns, values...)
		}
	}
	return dedupe(patterns)
}

// BuildFuzzyMaterialQuery builds ILIKE conditions over material name and description.
// Each term becomes one OR-group; groups are meant to be ANDed by the caller.
// Returns the conditions, their parameters and the next free parameter index.
func BuildFuzzyMaterialQuery(searchTerms []string, paramIndex int) ([]string, []interface{}, int) {
	var conditions []string
	var params []interface{}

	for _, term := range searchTerms {
		patterns := MaterialPatterns(term)
		if len(patterns) == 0 {
			continue
		}

		var orConditions []string
		for _, pattern := range patterns {
			orConditions = append(orConditions,
				fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", paramIndex, paramIndex))
			params = append(params, "%"+pattern+"%")
			paramIndex++
		}
		conditions = append(conditions, "("+strings.Join(orConditions, " OR ")+")")
	}

	return conditions, params, paramIndex
}

// SplitTerms splits a free-text query into search terms
func SplitTerms(q string) []string {
	return strings.Fields(q)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

package document

import (
	"encoding/json"
	"strings"
)

// Units parses a unit-identifier field. It accepts decoded JSON lists, list
// literals encoded as strings (JSON or single-quoted), and plain scalars as a
// single unit. Malformed list literals yield no units. Blank and "N/A"
// entries are dropped.
func Units(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return cleanUnits(v)
	case []any:
		units := make([]string, 0, len(v))
		for _, item := range v {
			units = append(units, Stringify(item))
		}
		return cleanUnits(units)
	case string:
		return parseUnitString(v)
	default:
		return cleanUnits([]string{Stringify(v)})
	}
}

func parseUnitString(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "(") {
		return cleanUnits([]string{trimmed})
	}

	if strings.HasPrefix(trimmed, "(") {
		if !strings.HasSuffix(trimmed, ")") {
			return nil
		}
		trimmed = "[" + trimmed[1:len(trimmed)-1] + "]"
	}

	var items []any
	if err := json.Unmarshal([]byte(trimmed), &items); err == nil {
		return Units(items)
	}
	// Single-quoted literals as produced by Python's repr
	if err := json.Unmarshal([]byte(strings.ReplaceAll(trimmed, "'", `"`)), &items); err == nil {
		return Units(items)
	}
	return nil
}

func cleanUnits(units []string) []string {
	cleaned := make([]string, 0, len(units))
	for _, unit := range units {
		unit = strings.TrimSpace(unit)
		if unit == "" || strings.EqualFold(unit, "n/a") {
			continue
		}
		cleaned = append(cleaned, unit)
	}
	return cleaned
}

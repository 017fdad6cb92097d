package assessment

import (
	"fmt"
	"strconv"
	"strings"
)

// Normalize reduces a decoded model response of any shape to an
// Analysis. It is total: every branch falls back to a valid record,
// and the same input always yields the same output. Field names
// accepted here track the shapes the model has been observed to emit.
func Normalize(raw any) Analysis {
	obj, ok := raw.(map[string]any)
	if !ok {
		// not a keyed structure at all; keep whatever it was as notes
		return Analysis{
			DamageType: DamageLabel{"Unknown"},
			Notes:      stringify(raw),
		}
	}

	var labels DamageLabel
	var locations []string

	damagesVal := firstPresent(obj, "damages", "damage")
	if entries, ok := damagesVal.([]any); ok && len(entries) > 0 {
		for _, e := range entries {
			entry, _ := e.(map[string]any)
			var part, dtype string
			if present(entry["part"]) {
				part = stringify(entry["part"])
			}
			if present(entry["damage_type"]) {
				dtype = stringify(entry["damage_type"])
			}
			switch {
			case dtype != "" && part != "":
				labels = append(labels, fmt.Sprintf("%s (%s)", dtype, part))
				locations = append(locations, part)
			case dtype != "":
				labels = append(labels, dtype)
			case part != "":
				locations = append(locations, part)
			}
		}
	} else {
		if dv := firstPresent(obj, "damage_type", "damage"); dv != nil {
			if arr, ok := dv.([]any); ok {
				for _, it := range arr {
					labels = append(labels, stringify(it))
				}
			} else {
				labels = append(labels, stringify(dv))
			}
		}
		if lv := firstPresent(obj, "location", "part"); lv != nil {
			if arr, ok := lv.([]any); ok {
				for _, it := range arr {
					locations = append(locations, stringify(it))
				}
			} else {
				locations = append(locations, stringify(lv))
			}
		}
	}

	if len(labels) == 0 {
		if present(obj["damage_type"]) {
			labels = DamageLabel{stringify(obj["damage_type"])}
		} else {
			labels = DamageLabel{"Unknown"}
		}
	}

	location := strings.Join(locations, ", ")
	if location == "" && present(obj["location"]) {
		location = stringify(obj["location"])
	}

	var usdRaw, inrRaw, jpyRaw any
	if est, ok := firstPresent(obj, "estimated_cost", "estimatedCosts").(map[string]any); ok {
		usdRaw = firstPresent(est, "usd", "USD", "dollars")
		inrRaw = firstPresent(est, "inr", "INR")
		jpyRaw = firstPresent(est, "jpy", "JPY", "yen")
	} else {
		usdRaw = firstPresent(obj, "cost_usd", "costUSD", "usd")
		inrRaw = firstPresent(obj, "cost_inr", "costINR", "inr")
		jpyRaw = firstPresent(obj, "cost_yen", "costJPY", "jpy")
	}

	notes := ""
	if nv := firstPresent(obj, "notes", "note", "raw_output"); nv != nil {
		notes = stringify(nv)
	}

	return Analysis{
		DamageType: labels,
		Location:   location,
		CostINR:    extractNumber(inrRaw),
		CostUSD:    extractNumber(usdRaw),
		CostYen:    extractNumber(jpyRaw),
		Notes:      notes,
	}
}

// present reports whether a decoded JSON value carries anything usable.
// Nulls, empty strings, zero numbers, and empty collections count as
// absent so lookup chains move on to the next candidate key.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case bool:
		return t
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

// firstPresent returns the first usable value among candidate keys.
func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && present(v) {
			return v
		}
	}
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

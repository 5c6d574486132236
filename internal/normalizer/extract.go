package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// lookup спускается по вложенным объектам: lookup(raw, "shop", "id").
func lookup(raw map[string]any, path ...string) (any, bool) {
	var cur any = raw
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

func firstPresent(raw map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := lookup(raw, key); ok {
			return v, true
		}
	}
	return nil, false
}

// toFloat не пропускает NaN и ±Inf: decimal их не представляет.
func toFloat(v any) (float64, bool) {
	f, ok := rawFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func rawFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		// "1,05" -> "1.05"
		if strings.Contains(s, ",") && !strings.Contains(s, ".") {
			s = strings.Replace(s, ",", ".", 1)
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

func floatField(raw map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := lookup(raw, key); ok {
			if f, ok := toFloat(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func stringAt(raw map[string]any, path ...string) (string, bool) {
	v, ok := lookup(raw, path...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func stringField(raw map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if s, ok := stringAt(raw, key); ok {
			return s, true
		}
	}
	return "", false
}

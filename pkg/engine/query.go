package engine

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Query holds query string parameters. Nil values are dropped and slice
// values are sent comma-joined under a single key
type Query map[string]any

// EncodeQuery appends the encoded query to path. Path is returned unchanged
// when no parameter survives filtering
func EncodeQuery(path string, q Query) string {
	if len(q) == 0 {
		return path
	}

	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok := indirect(q[k])
		if !ok {
			continue
		}
		pairs = append(pairs, escapeComponent(k)+"="+escapeComponent(formatValue(v)))
	}
	if len(pairs) == 0 {
		return path
	}
	return path + "?" + strings.Join(pairs, "&")
}

// indirect dereferences pointers and reports false for nil values
func indirect(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map) && rv.IsNil() {
		return reflect.Value{}, false
	}
	return rv, true
}

func formatValue(rv reflect.Value) string {
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		parts := make([]string, rv.Len())
		for i := range parts {
			if elem, ok := indirect(rv.Index(i).Interface()); ok {
				parts[i] = formatScalar(elem)
			}
		}
		return strings.Join(parts, ",")
	}
	return formatScalar(rv)
}

func formatScalar(rv reflect.Value) string {
	switch v := rv.Interface().(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(rv.Interface())
}

// componentUnescaper restores the characters encodeURIComponent leaves as is
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent percent-encodes s for use as a query key or value the way
// encodeURIComponent does
func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

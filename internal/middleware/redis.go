package middleware

import (
	"reflect"
)

// isNilClient reports whether a Redis interface holds no client, including a
// typed nil *redis.Client.
func isNilClient(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

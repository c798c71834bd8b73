package logtap

import "strings"

const maskedValue = "[MASKED]"

// maskingCore holds the logic for storing and checking sensitive keys.
// This struct is intended to be embedded in formatters.
type maskingCore struct {
	sensitiveKeys   map[string]struct{}
	insensitiveKeys map[string]struct{}
}

// addSensitive adds one or more keys for case-sensitive matching.
func (mc *maskingCore) addSensitive(keys ...string) {
	if mc.sensitiveKeys == nil {
		mc.sensitiveKeys = make(map[string]struct{})
	}

	for _, k := range keys {
		mc.sensitiveKeys[k] = struct{}{}
	}
}

// addInsensitive adds one or more keys for case-insensitive matching.
// The keys are stored in lower-case for efficient lookup.
func (mc *maskingCore) addInsensitive(keys ...string) {
	if mc.insensitiveKeys == nil {
		mc.insensitiveKeys = make(map[string]struct{})
	}

	for _, k := range keys {
		mc.insensitiveKeys[strings.ToLower(k)] = struct{}{}
	}
}

// enabled reports whether any key is registered. Safe on a nil receiver.
func (mc *maskingCore) enabled() bool {
	return mc != nil && (len(mc.sensitiveKeys) > 0 || len(mc.insensitiveKeys) > 0)
}

// isMasking checks if the given key should be masked.
// It checks sensitive keys first, then falls back to insensitive keys.
func (mc *maskingCore) isMasking(key string) bool {
	if !mc.enabled() {
		return false
	}

	if _, ok := mc.sensitiveKeys[key]; ok {
		return true
	}

	if len(mc.insensitiveKeys) > 0 {
		if _, ok := mc.insensitiveKeys[strings.ToLower(key)]; ok {
			return true
		}
	}

	return false
}

// maskMap returns m, or a masked copy of it when any of its keys match.
// The caller's map is never modified.
func (mc *maskingCore) maskMap(m map[string]any) map[string]any {
	if !mc.enabled() {
		return m
	}

	out := make(map[string]any, len(m))

	for k, v := range m {
		if mc.isMasking(k) {
			out[k] = maskedValue
		} else {
			out[k] = v
		}
	}

	return out
}

// maskStringMap is maskMap for map[string]string.
func (mc *maskingCore) maskStringMap(m map[string]string) map[string]string {
	if !mc.enabled() {
		return m
	}

	out := make(map[string]string, len(m))

	for k, v := range m {
		if mc.isMasking(k) {
			out[k] = maskedValue
		} else {
			out[k] = v
		}
	}

	return out
}

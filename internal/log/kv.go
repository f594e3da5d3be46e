package log

import "sort"

// KV holds the key-value pairs attached to one log line.
type KV map[string]any

// kvToArgs flattens the first KV into the alternating key/value argument
// list slog expects. Keys are emitted in sorted order so log lines are
// stable; extra KV arguments beyond the first are ignored.
func kvToArgs(keyVals ...KV) []any {
	args := []any{}
	if len(keyVals) == 0 {
		return args
	}

	kv := keyVals[0]
	keys := make([]string, 0, len(kv))
	for key := range kv {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		args = append(args, key, kv[key])
	}
	return args
}

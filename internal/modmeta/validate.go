package modmeta

import (
	"fmt"
	"sort"
	"strings"
)

// RequiredKeys lists every key the [mc-publish] table must carry, in
// export order.
var RequiredKeys = []string{
	"modrinth",
	"curseforge",
	"loader",
	"mc_version",
	"modrinth_slug",
	"curseforge_slug",
}

// allowedLoaders is the loader allow-list.
var allowedLoaders = map[string]bool{"forge": true}

// placeholderMarker introduces an unresolved CI template substitution.
// Finalized metadata must never contain one.
const placeholderMarker = "${{"

// Metadata is a validated, immutable snapshot of the publish table.
type Metadata struct {
	Modrinth       string
	CurseForge     string
	Loader         string
	MCVersion      string
	ModrinthSlug   string
	CurseForgeSlug string
}

// MissingKeysError lists every required key that is absent or empty,
// so one failure gives the complete diagnostic.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	qualified := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		qualified[i] = fmt.Sprintf("[%s].%s", TableName, k)
	}
	return "missing required keys: " + strings.Join(qualified, ", ")
}

// InvalidValueError reports a present key whose value is unacceptable.
type InvalidValueError struct {
	Key    string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("[%s].%s: %s", TableName, e.Key, e.Reason)
}

// Validate checks a decoded key/value mapping against the required-key
// set and returns the metadata record. All missing keys are collected
// into a single error; present values must not contain an unresolved
// template placeholder, and the loader must be on the allow-list.
func Validate(values map[string]any) (*Metadata, error) {
	var missing []string
	got := make(map[string]string, len(RequiredKeys))
	for _, key := range RequiredKeys {
		v, ok := normalizeValue(values[key])
		if !ok {
			missing = append(missing, key)
			continue
		}
		got[key] = v
	}
	if len(missing) > 0 {
		return nil, &MissingKeysError{Keys: missing}
	}

	for _, key := range RequiredKeys {
		if strings.Contains(got[key], placeholderMarker) {
			return nil, &InvalidValueError{
				Key:    key,
				Reason: fmt.Sprintf("contains unresolved template placeholder %q", placeholderMarker),
			}
		}
	}

	if !allowedLoaders[got["loader"]] {
		allowed := make([]string, 0, len(allowedLoaders))
		for l := range allowedLoaders {
			allowed = append(allowed, l)
		}
		sort.Strings(allowed)
		return nil, &InvalidValueError{
			Key:    "loader",
			Reason: fmt.Sprintf("must be one of: %s; found %q", strings.Join(allowed, ", "), got["loader"]),
		}
	}

	return &Metadata{
		Modrinth:       got["modrinth"],
		CurseForge:     got["curseforge"],
		Loader:         got["loader"],
		MCVersion:      got["mc_version"],
		ModrinthSlug:   got["modrinth_slug"],
		CurseForgeSlug: got["curseforge_slug"],
	}, nil
}

// normalizeValue maps a decoded scalar to its string form. Nil and
// whitespace-only strings count as missing; other scalars stringify.
func normalizeValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		trimmed := strings.TrimSpace(val)
		return trimmed, trimmed != ""
	default:
		return fmt.Sprintf("%v", val), true
	}
}

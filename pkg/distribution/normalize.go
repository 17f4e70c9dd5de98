package distribution

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/talentmap/pkg/errors"
)

// Wire field names of the talent-map API payload.
const (
	fieldTotalUsers     = "total_users"
	fieldTotalSkills    = "total_skills"
	fieldTotalLanguages = "total_languages"
	fieldTotalProjects  = "total_projects"
	fieldVerifiedUsers  = "verified_users_count"
	fieldSkills         = "skills_distribution"
	fieldLanguages      = "languages_distribution"
	fieldName           = "name"
	fieldCategory       = "category"
	fieldCount          = "count"
)

// Parse decodes a talent-map API body and normalizes it.
//
// Only bodies that are not JSON at all produce an error (code
// [errors.ErrCodeInvalidInput]). Any well-formed JSON value is accepted and
// normalized; a non-object document yields an empty Snapshot.
func Parse(data []byte) (Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Snapshot{Skills: []Entry{}, Languages: []Entry{}},
			errors.Wrap(errors.ErrCodeInvalidInput, err, "decode talent map payload")
	}
	return Normalize(raw), nil
}

// Normalize converts a loosely-shaped snapshot into a [Snapshot].
//
// raw is typically the result of decoding JSON into an any (a
// map[string]any), but a [Snapshot] or *Snapshot is also accepted and
// re-normalized. Anything else yields an empty Snapshot. Normalize never
// fails and never returns nil slices.
func Normalize(raw any) Snapshot {
	switch v := raw.(type) {
	case map[string]any:
		return normalizeMap(v)
	case Snapshot:
		return normalizeSnapshot(v)
	case *Snapshot:
		if v != nil {
			return normalizeSnapshot(*v)
		}
	}
	return Snapshot{Skills: []Entry{}, Languages: []Entry{}}
}

func normalizeMap(m map[string]any) Snapshot {
	return Snapshot{
		TotalUsers:     coerceCount(m[fieldTotalUsers]),
		TotalSkills:    coerceCount(m[fieldTotalSkills]),
		TotalLanguages: coerceCount(m[fieldTotalLanguages]),
		TotalProjects:  coerceCount(m[fieldTotalProjects]),
		VerifiedUsers:  coerceCount(m[fieldVerifiedUsers]),
		Skills:         normalizeEntries(m[fieldSkills], true),
		Languages:      normalizeEntries(m[fieldLanguages], false),
	}
}

func normalizeSnapshot(s Snapshot) Snapshot {
	out := Snapshot{
		TotalUsers:     max(s.TotalUsers, 0),
		TotalSkills:    max(s.TotalSkills, 0),
		TotalLanguages: max(s.TotalLanguages, 0),
		TotalProjects:  max(s.TotalProjects, 0),
		VerifiedUsers:  max(s.VerifiedUsers, 0),
		Skills:         make([]Entry, 0, len(s.Skills)),
		Languages:      make([]Entry, 0, len(s.Languages)),
	}
	for _, e := range s.Skills {
		if e.Name != "" {
			out.Skills = append(out.Skills, Entry{Name: e.Name, Category: e.Category, Count: max(e.Count, 0)})
		}
	}
	for _, e := range s.Languages {
		if e.Name != "" {
			out.Languages = append(out.Languages, Entry{Name: e.Name, Count: max(e.Count, 0)})
		}
	}
	return out
}

// normalizeEntries converts a raw table. Language tables never carry a
// category, so withCategory is false for them.
func normalizeEntries(raw any, withCategory bool) []Entry {
	items, ok := raw.([]any)
	if !ok {
		return []Entry{}
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := obj[fieldName].(string)
		if name == "" {
			continue
		}
		e := Entry{Name: name, Count: coerceCount(obj[fieldCount])}
		if withCategory {
			e.Category, _ = obj[fieldCategory].(string)
		}
		entries = append(entries, e)
	}
	return entries
}

// coerceCount turns any decoded JSON value into a non-negative int.
// Numeric strings are accepted; fractional values truncate toward zero.
func coerceCount(v any) int {
	var f float64
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return clampInt64(i)
		}
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		return max(n, 0)
	case int64:
		return clampInt64(n)
	case int32:
		return max(int(n), 0)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	}
	return int(f)
}

func clampInt64(i int64) int {
	if i <= 0 {
		return 0
	}
	if i > math.MaxInt {
		return math.MaxInt
	}
	return int(i)
}

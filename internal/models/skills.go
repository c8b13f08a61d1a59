package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SkillList is a list of skill names stored as a JSON array.
type SkillList []string

// Value implements driver.Valuer.
func (s SkillList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *SkillList) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = SkillList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported skills column type %T", value)
	}

	var skills []string
	if err := json.Unmarshal(raw, &skills); err != nil {
		return fmt.Errorf("failed to decode skills: %w", err)
	}
	*s = skills
	return nil
}

// NormalizeSkills trims names, drops empties and duplicates, and sorts the result.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

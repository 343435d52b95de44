// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSequence reads node ids typed as text. Ids may be separated by
// spaces, commas, dashes or '>' ("1 2 3 4", "1-2-3-4", "1>2>3"), or run
// together as single digits ("1234"). The result is not validated; use
// ValidateSequence for stored patterns.
func ParseSequence(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty pattern")
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '-' || r == '>' || r == '\t'
	})
	if len(fields) == 1 {
		// Bare digits: every rune is one node.
		fields = strings.Split(fields[0], "")
	}

	seq := make([]int, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid node %q: %w", f, err)
		}
		seq = append(seq, id)
	}
	return seq, nil
}

// FormatSequence renders ids the way ParseSequence reads them back.
func FormatSequence(seq []int) string {
	parts := make([]string, len(seq))
	for i, id := range seq {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, "-")
}

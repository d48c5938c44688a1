package apc

import (
	"strings"
)

// ParseTable reads a bordered apc table:
//
//	+--------+---------+
//	| Name   | Type    |
//	+--------+---------+
//	| nfs-1  | nfs     |
//	+--------+---------+
//
// It returns one map per data row, keyed by lowercased header. Lines that are
// not part of a table are ignored.
func ParseTable(out []byte) []map[string]string {
	var header []string
	var rows []map[string]string

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		cells := splitRow(line)
		if header == nil {
			header = make([]string, len(cells))
			for i, c := range cells {
				header[i] = strings.ToLower(c)
			}
			continue
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(cells) {
				row[h] = cells[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func splitRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// names returns the non-empty "name" column of a table.
func names(out []byte) []string {
	var result []string
	for _, row := range ParseTable(out) {
		if n := row["name"]; n != "" {
			result = append(result, n)
		}
	}
	return result
}

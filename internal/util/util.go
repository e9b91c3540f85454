package util

import "strings"

// NormalizeURL приводит исходный URL к каноничному виду перед записью:
// обрезает пробелы и дописывает схему http://, если схемы нет.
// Операция идемпотентна.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "http://" + s
	}
	return s
}

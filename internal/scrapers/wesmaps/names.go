package wesmaps

import (
	"strconv"
	"strings"
)

// NormalizeProfessorName turns "Lastname, Firstname Middle" into "Firstname Lastname".
// Everything after the first name is dropped. Names without a comma are only trimmed.
func NormalizeProfessorName(name string) string {
	last, rest, found := strings.Cut(name, ",")
	if !found {
		return strings.TrimSpace(name)
	}
	last = strings.TrimSpace(last)
	given := strings.Fields(rest)
	if len(given) == 0 {
		return last
	}
	return strings.TrimSpace(given[0] + " " + last)
}

// NormalizeSection strips leading zeros from a section label, "01" becomes "1".
func NormalizeSection(section string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(section))
	if err != nil {
		return "", err
	}
	return strconv.Itoa(n), nil
}

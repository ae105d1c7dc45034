package shared

import (
	"errors"
	"strconv"
	"strings"
)

var ErrBadPeriod = errors.New("period must be in YYYY-MM format")

// ParsePeriod splits a "YYYY-MM" period into its year and month.
func ParsePeriod(value string) (year, month int, err error) {
	parts := strings.Split(strings.TrimSpace(value), "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return 0, 0, ErrBadPeriod
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, ErrBadPeriod
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, ErrBadPeriod
	}
	return year, month, nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

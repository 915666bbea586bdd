package main

import (
	"fmt"
	"strconv"
	"strings"

	"callsheet/internal/store"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func parseAmount(arg string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", arg)
	}
	return value, nil
}

func money(currency string, amount float64) string {
	return store.FormatMoney(currency, amount)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

package ceda

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNoEmissionFactor is returned when no factor exists for a
// (country, category) pair. Never silently zero.
var ErrNoEmissionFactor = errors.New("no emission factor found for the specified country and category")

//go:embed factors.json
var factorsFS embed.FS

// Factor is one row of the CEDA table: kg CO2e emitted per USD spent in a
// spend category within a country.
type Factor struct {
	Country  string  `json:"country"`
	Category string  `json:"category"`
	Factor   float64 `json:"factor"`
}

var (
	loadOnce sync.Once
	table    map[string]Factor
)

func load() {
	raw, err := factorsFS.ReadFile("factors.json")
	if err != nil {
		panic(fmt.Sprintf("ceda: read embedded factors: %v", err))
	}
	var rows []Factor
	if err := json.Unmarshal(raw, &rows); err != nil {
		panic(fmt.Sprintf("ceda: parse embedded factors: %v", err))
	}
	table = make(map[string]Factor, len(rows))
	for _, row := range rows {
		table[key(row.Country, row.Category)] = row
	}
}

func key(country, category string) string {
	return strings.ToLower(strings.TrimSpace(country)) + "|" + strings.ToLower(strings.TrimSpace(category))
}

// Lookup resolves the emission factor for a (country, category) pair,
// matching case-insensitively. The returned row carries the canonical
// casing from the table.
func Lookup(country, category string) (Factor, error) {
	loadOnce.Do(load)
	row, ok := table[key(country, category)]
	if !ok {
		return Factor{}, ErrNoEmissionFactor
	}
	return row, nil
}

// Categories lists the distinct category names, for populating the entry form.
func Categories() []string {
	loadOnce.Do(load)
	seen := make(map[string]struct{})
	var out []string
	for _, row := range table {
		if _, ok := seen[row.Category]; ok {
			continue
		}
		seen[row.Category] = struct{}{}
		out = append(out, row.Category)
	}
	return out
}

package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// GBPerTB is the conversion used for every capacity in the system.
const GBPerTB = 1024

var capacityRE = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(TB|GB)\b`)

// ParseCapacityGB parses the first "<number> GB|TB" occurrence in s.
// TB values are multiplied by 1024 and truncated to an integer.
func ParseCapacityGB(s string) (int, bool) {
	m := capacityRE.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return capacityFromMatch(m[1], m[2])
}

// ParseAllCapacitiesGB returns every capacity mentioned in s, in order.
func ParseAllCapacitiesGB(s string) []int {
	var out []int
	for _, m := range capacityRE.FindAllStringSubmatch(s, -1) {
		if gb, ok := capacityFromMatch(m[1], m[2]); ok {
			out = append(out, gb)
		}
	}
	return out
}

func capacityFromMatch(num, unit string) (int, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", "."), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	if strings.EqualFold(unit, "TB") {
		v *= GBPerTB
	}
	return int(v), true
}

// CapacityNotations returns every textual representation of gb the catalog
// is known to use: "128GB", "128 GB" and, for whole terabytes, "1TB", "1 TB".
func CapacityNotations(gb int) []string {
	if gb <= 0 {
		return nil
	}
	out := []string{
		fmt.Sprintf("%dGB", gb),
		fmt.Sprintf("%d GB", gb),
	}
	if gb%GBPerTB == 0 {
		tb := gb / GBPerTB
		out = append(out, fmt.Sprintf("%dTB", tb), fmt.Sprintf("%d TB", tb))
	}
	return out
}

// FormatCapacity returns the preferred display string for gb.
func FormatCapacity(gb int) string {
	if gb > 0 && gb%GBPerTB == 0 {
		return fmt.Sprintf("%d TB", gb/GBPerTB)
	}
	return fmt.Sprintf("%d GB", gb)
}

// CapacityMatches reports whether a catalog capacity string denotes exactly gb.
// The comparison is against the notations of CapacityNotations, ignoring case
// and repeated whitespace.
func CapacityMatches(size string, gb int) bool {
	normalised := strings.ToUpper(strings.Join(strings.Fields(size), " "))
	for _, n := range CapacityNotations(gb) {
		if normalised == strings.ToUpper(n) {
			return true
		}
	}
	return false
}

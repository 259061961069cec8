package tally

import "strconv"

// Ordinal names a 1-based rank position. Position 1 is "top"; the rest use
// the last digit for the suffix, so 11, 12 and 13 come out as "11st", "12nd"
// and "13rd". Clients already key on these names.
func Ordinal(pos int) string {
	if pos == 1 {
		return "top"
	}
	n := strconv.Itoa(pos)
	switch pos % 10 {
	case 1:
		return n + "st"
	case 2:
		return n + "nd"
	case 3:
		return n + "rd"
	default:
		return n + "th"
	}
}

// FieldName is the breakdown key for a 1-based rank position, e.g. "top choice".
func FieldName(pos int) string {
	return Ordinal(pos) + " choice"
}

// RankFields lists the breakdown keys for positions 1..width in order.
func RankFields(width int) []string {
	fields := make([]string, 0, width)
	for pos := 1; pos <= width; pos++ {
		fields = append(fields, FieldName(pos))
	}
	return fields
}

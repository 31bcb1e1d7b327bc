package canvas

import (
	"fmt"
	"strconv"
	"strings"

	"htmlcanvas/container"
)

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// MarkerText is the counter text of a numbered list item, including the
// trailing period. Glyph markers (disc, circle, square) and none yield "".
func MarkerText(t container.ListStyleType, index int) string {
	var s string
	switch t {
	case container.ListStyleDecimal:
		s = strconv.Itoa(index)
	case container.ListStyleDecimalLeadingZero:
		s = fmt.Sprintf("%02d", index)
	case container.ListStyleLowerAlpha, container.ListStyleUpperAlpha:
		s = alpha(index)
		if t == container.ListStyleUpperAlpha {
			s = strings.ToUpper(s)
		}
	case container.ListStyleLowerRoman, container.ListStyleUpperRoman:
		s = roman(index)
		if t == container.ListStyleLowerRoman {
			s = strings.ToLower(s)
		}
	default:
		return ""
	}
	return s + "."
}

// alpha is bijective base-26: 1=a, 26=z, 27=aa.
func alpha(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var b []byte
	for n > 0 {
		n--
		b = append(b, byte('a'+n%26))
		n /= 26
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func roman(n int) string {
	if n <= 0 || n > 3999 {
		return strconv.Itoa(n)
	}
	var sb strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			sb.WriteString(r.symbol)
			n -= r.value
		}
	}
	return sb.String()
}

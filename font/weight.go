package font

import (
	"strings"
)

// Weight is one of the discrete weight buckets system fonts are published in.
type Weight int

const (
	Thin       Weight = 100
	ExtraLight Weight = 200
	Light      Weight = 300
	Regular    Weight = 400
	Medium     Weight = 500
	SemiBold   Weight = 600
	Bold       Weight = 700
	ExtraBold  Weight = 800
	Black      Weight = 900
)

var weightNames = map[Weight]string{
	Thin:       "thin",
	ExtraLight: "extralight",
	Light:      "light",
	Regular:    "regular",
	Medium:     "medium",
	SemiBold:   "semibold",
	Bold:       "bold",
	ExtraBold:  "extrabold",
	Black:      "black",
}

func (w Weight) String() string {
	if name, ok := weightNames[w]; ok {
		return name
	}
	return "regular"
}

// WeightBucket maps a CSS numeric weight onto a bucket. ok is false when the
// weight is outside 1..1000; the bucket is then Regular.
func WeightBucket(weight int) (w Weight, ok bool) {
	switch {
	case weight < 1 || weight > 1000:
		return Regular, false
	case weight < 150:
		return Thin, true
	case weight < 250:
		return ExtraLight, true
	case weight < 350:
		return Light, true
	case weight < 450:
		return Regular, true
	case weight < 550:
		return Medium, true
	case weight < 650:
		return SemiBold, true
	case weight < 750:
		return Bold, true
	case weight < 850:
		return ExtraBold, true
	default:
		return Black, true
	}
}

// ParseFamilies splits a font-family preference list, dropping quotes and
// empty entries.
func ParseFamilies(list string) []string {
	var families []string
	for _, f := range strings.Split(list, ",") {
		f = strings.TrimSpace(f)
		f = strings.Trim(f, `"'`)
		f = strings.TrimSpace(f)
		if f != "" {
			families = append(families, f)
		}
	}
	return families
}

package garden

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bloodmagesoftware/gardenplan/geom"
)

// DefaultFootprint is used whenever a size string cannot be understood.
var DefaultFootprint = geom.Size{W: 1, H: 1}

var (
	spacingPairPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)x(\d+(?:\.\d+)?)(cm|m)?`)
	spacingSinglePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)(cm|m)`)
	terrainPairPattern   = regexp.MustCompile(`(\d+)x(\d+)m`)
	terrainSinglePattern = regexp.MustCompile(`(\d+)m`)
)

// ParseSpacing converts a plant spacing string into meters.
// Accepted forms are "30x30cm", "1x1m", "2x3" (meters), "50cm" and "2m".
// Anything else yields DefaultFootprint.
func ParseSpacing(spacing string) geom.Size {
	spacing = strings.ToLower(strings.TrimSpace(spacing))

	if strings.Contains(spacing, "x") {
		if m := spacingPairPattern.FindStringSubmatch(spacing); m != nil {
			w, errW := strconv.ParseFloat(m[1], 64)
			h, errH := strconv.ParseFloat(m[2], 64)
			if errW == nil && errH == nil {
				if m[3] == "cm" {
					w, h = w/100, h/100
				}
				return positiveOrDefault(geom.Size{W: w, H: h})
			}
		}
	}

	if m := spacingSinglePattern.FindStringSubmatch(spacing); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			if m[2] == "cm" {
				v /= 100
			}
			return positiveOrDefault(geom.Size{W: v, H: v})
		}
	}

	return DefaultFootprint
}

// ParseTerrainSize converts a terrain or structure size string ("4x2m", "3m") into meters.
// Free-form values such as "Variável" yield DefaultFootprint.
func ParseTerrainSize(size string) geom.Size {
	size = strings.ToLower(strings.TrimSpace(size))

	if m := terrainPairPattern.FindStringSubmatch(size); m != nil {
		w, _ := strconv.Atoi(m[1])
		h, _ := strconv.Atoi(m[2])
		return positiveOrDefault(geom.Size{W: float64(w), H: float64(h)})
	}
	if m := terrainSinglePattern.FindStringSubmatch(size); m != nil {
		v, _ := strconv.Atoi(m[1])
		return positiveOrDefault(geom.Size{W: float64(v), H: float64(v)})
	}
	return DefaultFootprint
}

func positiveOrDefault(s geom.Size) geom.Size {
	if s.Empty() {
		return DefaultFootprint
	}
	return s
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// paperSize is a page size in millimetres, portrait.
type paperSize struct {
	Width, Height float64
}

var paperSizes = map[string]paperSize{
	"a3":     {297, 420},
	"a4":     {210, 297},
	"a5":     {148, 210},
	"letter": {215.9, 279.4},
	"legal":  {215.9, 355.6},
}

func lookupPaper(name string) (paperSize, error) {
	p, ok := paperSizes[strings.ToLower(name)]
	if !ok {
		return paperSize{}, fmt.Errorf("unsupported page size %q", name)
	}
	return p, nil
}

const mmPerInch = 25.4

// ParseLength converts a length such as "0.75in", "20mm", or "2cm" to
// millimetres. A bare number is taken as millimetres.
func ParseLength(in string) (float64, error) {
	s := strings.TrimSpace(strings.ToLower(in))
	factor := 1.0
	switch {
	case strings.HasSuffix(s, "in"):
		factor, s = mmPerInch, strings.TrimSuffix(s, "in")
	case strings.HasSuffix(s, "mm"):
		s = strings.TrimSuffix(s, "mm")
	case strings.HasSuffix(s, "cm"):
		factor, s = 10, strings.TrimSuffix(s, "cm")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid length %q", in)
	}
	return v * factor, nil
}

// inches formats millimetres as a decimal inch count, rounded to 1/10000.
func inches(mm float64) string {
	return strconv.FormatFloat(math.Round(mm/mmPerInch*1e4)/1e4, 'f', -1, 64)
}

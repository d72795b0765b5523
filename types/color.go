package types

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"
)

// ColorInt converts a "#rrggbb", "#rgb" or CSS colour name to the integer
// form Discord embeds use. Unknown values fall back to seagreen.
func ColorInt(s string) int {
	c, err := ParseHexColor(s)
	if err != nil {
		nColor, ok := colornames.Map[s]
		if !ok {
			nColor = colornames.Seagreen
		}
		c = nColor
	}
	return (int(c.R) << 16) | (int(c.G) << 8) | int(c.B)
}

func ParseHexColor(s string) (c color.RGBA, err error) {
	c.A = 0xff
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		// Double the hex digits:
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("invalid length, must be 7 or 4")
	}
	return
}

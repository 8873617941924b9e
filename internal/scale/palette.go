package scale

// Palette is an ordinal color scale: index i maps to the i-th color, cycling
type Palette []string

// Category10 is the ten-color categorical palette used for legend swatches
var Category10 = Palette{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#7f7f7f",
	"#bcbd22",
	"#17becf",
}

// Color returns the color at position i
func (p Palette) Color(i int) string {
	if len(p) == 0 {
		return ""
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

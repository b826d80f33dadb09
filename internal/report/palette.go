package report

// palette is the colour cycle shared by the pie and line charts.
var palette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7", "#DDA0DD",
	"#98D8C8", "#FF9F68", "#A8E6CF", "#FFACAC", "#B5EAD7", "#C7CEEA",
}

// TotalColor is used for the synthesized total-assets line.
const TotalColor = "#FFD700"

// Color returns the chart colour for the i-th series.
func Color(i int) string {
	if i < 0 {
		i = -i
	}

	return palette[i%len(palette)]
}

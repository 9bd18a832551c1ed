// Package advisory maps a UV index onto the WHO exposure categories and the
// sun protection advice shown to users.
package advisory

// Level is one UV exposure category.
type Level struct {
	Risk   string
	Advice string
}

var (
	Low = Level{
		Risk:   "Low",
		Advice: "Low UV. Minimal sun protection required; wear sunglasses on bright days.",
	}
	Moderate = Level{
		Risk:   "Moderate",
		Advice: "Moderate UV. Wear a hat and sunglasses and apply SPF 30+ sunscreen.",
	}
	High = Level{
		Risk:   "High",
		Advice: "High UV. Slip on clothing, slop on SPF 30+ sunscreen, slap on a hat and seek shade around midday.",
	}
	VeryHigh = Level{
		Risk:   "Very High",
		Advice: "Very high UV. Minimise time outdoors between 10am and 3pm; use SPF 50+ sunscreen, a broad-brimmed hat and protective clothing.",
	}
	Extreme = Level{
		Risk:   "Extreme",
		Advice: "Extreme UV. Avoid being outside during midday hours; unprotected skin can burn in minutes.",
	}
)

// Classify returns the level for a UV index. Bucket upper bounds are inclusive.
func Classify(uv float64) Level {
	switch {
	case uv <= 2:
		return Low
	case uv <= 5:
		return Moderate
	case uv <= 7:
		return High
	case uv <= 10:
		return VeryHigh
	default:
		return Extreme
	}
}

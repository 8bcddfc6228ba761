package weather

const unknownCondition = "Variable"

// ConditionLabel maps a WMO weather interpretation code to a short label.
func ConditionLabel(code int) string {
	switch code {
	case 0:
		return "Clear"
	case 1:
		return "Mainly Clear"
	case 2:
		return "Partly Cloudy"
	case 3:
		return "Overcast"
	case 45, 48:
		return "Fog"
	case 51, 53, 55:
		return "Drizzle"
	case 61, 63, 65:
		return "Rain"
	case 71, 73, 75:
		return "Snow"
	case 80, 81, 82:
		return "Showers"
	case 95, 96, 99:
		return "Thunderstorm"
	default:
		return unknownCondition
	}
}

package units

// Convert converts a price-per-unit value between two units of the same
// dimension. The second return is false when the units belong to different
// dimensions or either is unknown.
//
// Note the direction: this converts a PRICE, not a quantity. A price quoted
// per foot becomes a larger number per meter, so the ratio is
// toFactor/fromFactor (more feet fit in a meter, the per-meter price scales
// up by the same ratio a per-foot quantity would scale down).
func Convert(pricePerUnit float64, fromUnit, toUnit string) (float64, bool) {
	from := normalize(fromUnit)
	to := normalize(toUnit)
	if from == to {
		// identity, deliberately not a table lookup so unknown but equal
		// units still pass through
		return pricePerUnit, true
	}
	fu, ok := byName[from]
	if !ok {
		return 0, false
	}
	tu, ok := byName[to]
	if !ok {
		return 0, false
	}
	if fu.Dimension != tu.Dimension {
		return 0, false
	}
	return pricePerUnit * (tu.Factor / fu.Factor), true
}

// Profit computes per-sell-unit profit given a sell price and a cost quoted
// in a possibly different unit. Percent is relative to the converted cost,
// zero when the converted cost is not positive. ok is false when the cost
// cannot be expressed in the sell unit, in which case callers should render
// "N/A (different units)" rather than a number.
func Profit(sell float64, sellUnit string, cost float64, costUnit string) (profit, percent float64, ok bool) {
	converted, ok := Convert(cost, costUnit, sellUnit)
	if !ok {
		return 0, 0, false
	}
	profit = sell - converted
	if converted > 0 {
		percent = profit / converted * 100
	}
	return profit, percent, true
}

// Package units implements dimensional unit conversion for price-per-unit
// values. Units are partitioned into six disjoint dimensions; converting
// between dimensions is not possible and is reported via an ok=false return.
package units

import "strings"

// Dimension identifies a family of mutually convertible units.
type Dimension string

const (
	Weight Dimension = "weight"
	Length Dimension = "length"
	Volume Dimension = "volume"
	Area   Dimension = "area"
	Time   Dimension = "time"
	Count  Dimension = "count"
)

// Unit is one entry of the conversion catalog. Factor is the multiplicative
// factor from this unit to the dimension's reference unit (gram, meter,
// liter, square meter, hour, piece).
type Unit struct {
	Name      string
	Tag       string
	Dimension Dimension
	Factor    float64
	Aliases   []string
}

// catalog is the single source of truth for names, aliases, dimensions and
// factors. The lookup maps below are derived from it so the display alias
// table and the factor table cannot drift apart.
var catalog = []Unit{
	// weight (reference: gram)
	{Name: "milligram", Tag: "mg", Dimension: Weight, Factor: 0.001, Aliases: []string{"mg", "mgs", "milligrams"}},
	{Name: "gram", Tag: "g", Dimension: Weight, Factor: 1, Aliases: []string{"g", "gm", "gms", "grams"}},
	{Name: "kilogram", Tag: "kg", Dimension: Weight, Factor: 1000, Aliases: []string{"kg", "kgs", "kilo", "kilos", "kilograms"}},
	{Name: "quintal", Tag: "quintal", Dimension: Weight, Factor: 100000, Aliases: []string{"quintals", "qtl"}},
	{Name: "tonne", Tag: "ton", Dimension: Weight, Factor: 1e6, Aliases: []string{"ton", "tons", "tonnes", "mt"}},
	{Name: "pound", Tag: "lb", Dimension: Weight, Factor: 453.592, Aliases: []string{"lb", "lbs", "pounds"}},
	{Name: "ounce", Tag: "oz", Dimension: Weight, Factor: 28.3495, Aliases: []string{"oz", "ounces"}},

	// length (reference: meter)
	{Name: "millimeter", Tag: "mm", Dimension: Length, Factor: 0.001, Aliases: []string{"mm", "millimetre", "millimetres", "millimeters"}},
	{Name: "centimeter", Tag: "cm", Dimension: Length, Factor: 0.01, Aliases: []string{"cm", "cms", "centimetre", "centimetres", "centimeters"}},
	{Name: "meter", Tag: "m", Dimension: Length, Factor: 1, Aliases: []string{"m", "mtr", "mtrs", "metre", "metres", "meters"}},
	{Name: "kilometer", Tag: "km", Dimension: Length, Factor: 1000, Aliases: []string{"km", "kms", "kilometre", "kilometres", "kilometers"}},
	{Name: "inch", Tag: "in", Dimension: Length, Factor: 0.0254, Aliases: []string{"in", "inches", `"`}},
	{Name: "foot", Tag: "ft", Dimension: Length, Factor: 0.3048, Aliases: []string{"ft", "feet", "foots", "'"}},
	{Name: "yard", Tag: "yd", Dimension: Length, Factor: 0.9144, Aliases: []string{"yd", "yds", "yards"}},
	{Name: "mile", Tag: "mi", Dimension: Length, Factor: 1609.34, Aliases: []string{"mi", "miles"}},

	// volume (reference: liter)
	{Name: "milliliter", Tag: "ml", Dimension: Volume, Factor: 0.001, Aliases: []string{"ml", "millilitre", "millilitres", "milliliters"}},
	{Name: "liter", Tag: "l", Dimension: Volume, Factor: 1, Aliases: []string{"l", "lt", "ltr", "ltrs", "litre", "litres", "liters"}},
	{Name: "gallon", Tag: "gal", Dimension: Volume, Factor: 3.78541, Aliases: []string{"gal", "gallons"}},
	{Name: "cubic meter", Tag: "cbm", Dimension: Volume, Factor: 1000, Aliases: []string{"cbm", "m3", "cubic metre", "cubic meters", "cubic metres"}},
	{Name: "cubic foot", Tag: "cft", Dimension: Volume, Factor: 28.3168, Aliases: []string{"cft", "ft3", "cubic feet", "cubic ft"}},

	// area (reference: square meter)
	{Name: "square centimeter", Tag: "sqcm", Dimension: Area, Factor: 0.0001, Aliases: []string{"sq cm", "sqcm", "cm2", "square centimetre", "square centimeters"}},
	{Name: "square meter", Tag: "sqm", Dimension: Area, Factor: 1, Aliases: []string{"sq m", "sqm", "m2", "sq mtr", "square metre", "square meters", "square metres"}},
	{Name: "square inch", Tag: "sqin", Dimension: Area, Factor: 0.00064516, Aliases: []string{"sq in", "sqin", "in2", "square inches"}},
	{Name: "square foot", Tag: "sqft", Dimension: Area, Factor: 0.092903, Aliases: []string{"sq ft", "sqft", "ft2", "square feet", "square ft"}},
	{Name: "square yard", Tag: "sqyd", Dimension: Area, Factor: 0.836127, Aliases: []string{"sq yd", "sqyd", "square yards", "gaj"}},
	{Name: "acre", Tag: "acre", Dimension: Area, Factor: 4046.86, Aliases: []string{"acres"}},
	{Name: "hectare", Tag: "ha", Dimension: Area, Factor: 10000, Aliases: []string{"ha", "hectares"}},

	// time (reference: hour)
	{Name: "minute", Tag: "min", Dimension: Time, Factor: 1.0 / 60.0, Aliases: []string{"min", "mins", "minutes"}},
	{Name: "hour", Tag: "hr", Dimension: Time, Factor: 1, Aliases: []string{"hr", "hrs", "hours"}},
	{Name: "day", Tag: "day", Dimension: Time, Factor: 24, Aliases: []string{"days"}},
	{Name: "week", Tag: "wk", Dimension: Time, Factor: 168, Aliases: []string{"wk", "weeks"}},
	{Name: "month", Tag: "mo", Dimension: Time, Factor: 720, Aliases: []string{"months"}},
	{Name: "year", Tag: "yr", Dimension: Time, Factor: 8760, Aliases: []string{"yr", "yrs", "years"}},

	// count (reference: piece)
	{Name: "piece", Tag: "pc", Dimension: Count, Factor: 1, Aliases: []string{"pc", "pcs", "pieces", "nos", "no", "unit", "units"}},
	{Name: "pair", Tag: "pair", Dimension: Count, Factor: 2, Aliases: []string{"pairs", "pr"}},
	{Name: "dozen", Tag: "dz", Dimension: Count, Factor: 12, Aliases: []string{"dz", "doz", "dozens"}},
	{Name: "gross", Tag: "gross", Dimension: Count, Factor: 144, Aliases: []string{}},
	{Name: "hundred", Tag: "hundred", Dimension: Count, Factor: 100, Aliases: []string{"hundreds"}},
	{Name: "set", Tag: "set", Dimension: Count, Factor: 1, Aliases: []string{"sets"}},
	{Name: "box", Tag: "box", Dimension: Count, Factor: 1, Aliases: []string{"boxes"}},
	{Name: "packet", Tag: "pkt", Dimension: Count, Factor: 1, Aliases: []string{"pkt", "pack", "packs", "packets"}},
	{Name: "bundle", Tag: "bdl", Dimension: Count, Factor: 1, Aliases: []string{"bdl", "bundles"}},
	{Name: "roll", Tag: "roll", Dimension: Count, Factor: 1, Aliases: []string{"rolls"}},
	{Name: "sheet", Tag: "sheet", Dimension: Count, Factor: 1, Aliases: []string{"sheets"}},
	{Name: "bag", Tag: "bag", Dimension: Count, Factor: 1, Aliases: []string{"bags"}},
}

var byName map[string]*Unit

func init() {
	byName = make(map[string]*Unit, len(catalog)*3)
	for i := range catalog {
		u := &catalog[i]
		byName[normalize(u.Name)] = u
		for _, a := range u.Aliases {
			byName[normalize(a)] = u
		}
	}
}

// normalize lower-cases, trims and collapses interior whitespace so that
// "Sq  Ft" and "sq ft" resolve identically.
func normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Resolve looks a unit up by canonical name or any alias.
func Resolve(name string) (Unit, bool) {
	u, ok := byName[normalize(name)]
	if !ok {
		return Unit{}, false
	}
	return *u, true
}

// Canonical returns the primary display name for a unit name or alias.
// Unknown names are returned normalized but otherwise untouched.
func Canonical(name string) string {
	if u, ok := byName[normalize(name)]; ok {
		return u.Name
	}
	return normalize(name)
}

// All returns the full catalog, in declaration order.
func All() []Unit {
	out := make([]Unit, len(catalog))
	copy(out, catalog)
	return out
}

// AliasTags returns every recognised unit spelling mapped to its short
// canonical tag. The price-tree search normalizer rewrites numeric+unit
// phrases through this map so "1/2 inch" and `1/2"` collapse to one token.
func AliasTags() map[string]string {
	out := make(map[string]string, len(byName))
	for alias, u := range byName {
		out[alias] = u.Tag
	}
	return out
}

package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/wealthtrail/household-projector/internal/domain"
)

// STATIC TAX DATA ASSUMPTIONS:
//
// 1. Federal brackets, standard deductions and capital-gains thresholds are
//    2025 IRS values, held constant for all projection years (no inflation
//    indexing).
// 2. State tables carry a flat rate or single-filer brackets; married-filing-
//    jointly thresholds are derived by doubling the single limits, the same
//    approximation used for the federal fallback brackets.
// 3. Social Security taxability thresholds are the statutory (unindexed)
//    values; married-filing-separately and head-of-household use the single
//    thresholds.
//
// All tables are tagged with TaxYear so a future vintage can be added without
// mutating this data.

// TaxYear is the vintage of every static table in this file.
const TaxYear = 2025

// TaxBracket is one rung of a progressive rate table.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// taxTableCeiling stands in for "no upper limit" in the top bracket.
var taxTableCeiling = decimal.NewFromInt(999999999)

func bracket(min, max int64, rate float64) TaxBracket {
	return TaxBracket{
		Min:  decimal.NewFromInt(min),
		Max:  decimal.NewFromInt(max),
		Rate: decimal.NewFromFloat(rate),
	}
}

func topBracket(min int64, rate float64) TaxBracket {
	return TaxBracket{
		Min:  decimal.NewFromInt(min),
		Max:  taxTableCeiling,
		Rate: decimal.NewFromFloat(rate),
	}
}

// federalBrackets2025 holds the ordered federal brackets per filing status.
var federalBrackets2025 = map[domain.FilingStatus][]TaxBracket{
	domain.FilingSingle: {
		bracket(0, 11925, 0.10),
		bracket(11925, 48475, 0.12),
		bracket(48475, 103350, 0.22),
		bracket(103350, 197300, 0.24),
		bracket(197300, 250525, 0.32),
		bracket(250525, 626350, 0.35),
		topBracket(626350, 0.37),
	},
	domain.FilingMarriedJointly: {
		bracket(0, 23850, 0.10),
		bracket(23850, 96950, 0.12),
		bracket(96950, 206700, 0.22),
		bracket(206700, 394600, 0.24),
		bracket(394600, 501050, 0.32),
		bracket(501050, 751600, 0.35),
		topBracket(751600, 0.37),
	},
	domain.FilingMarriedSeparately: {
		bracket(0, 11925, 0.10),
		bracket(11925, 48475, 0.12),
		bracket(48475, 103350, 0.22),
		bracket(103350, 197300, 0.24),
		bracket(197300, 250525, 0.32),
		bracket(250525, 375800, 0.35),
		topBracket(375800, 0.37),
	},
	domain.FilingHeadOfHousehold: {
		bracket(0, 17000, 0.10),
		bracket(17000, 64850, 0.12),
		bracket(64850, 103350, 0.22),
		bracket(103350, 197300, 0.24),
		bracket(197300, 250525, 0.32),
		bracket(250525, 626350, 0.35),
		topBracket(626350, 0.37),
	},
}

// standardDeductions2025 per filing status.
var standardDeductions2025 = map[domain.FilingStatus]decimal.Decimal{
	domain.FilingSingle:            decimal.NewFromInt(15000),
	domain.FilingMarriedJointly:    decimal.NewFromInt(30000),
	domain.FilingMarriedSeparately: decimal.NewFromInt(15000),
	domain.FilingHeadOfHousehold:   decimal.NewFromInt(22500),
}

// capGainsThresholds2025 holds the 0%/15%/20% breakpoints: gains stacked on
// ordinary income below ZeroRateTop are untaxed, below FifteenRateTop taxed
// at 15%, and above it at 20%.
type capGainsThresholds struct {
	ZeroRateTop    decimal.Decimal
	FifteenRateTop decimal.Decimal
}

var capGainsThresholds2025 = map[domain.FilingStatus]capGainsThresholds{
	domain.FilingSingle: {
		ZeroRateTop:    decimal.NewFromInt(48350),
		FifteenRateTop: decimal.NewFromInt(533400),
	},
	domain.FilingMarriedJointly: {
		ZeroRateTop:    decimal.NewFromInt(96700),
		FifteenRateTop: decimal.NewFromInt(600050),
	},
	domain.FilingMarriedSeparately: {
		ZeroRateTop:    decimal.NewFromInt(48350),
		FifteenRateTop: decimal.NewFromInt(300000),
	},
	domain.FilingHeadOfHousehold: {
		ZeroRateTop:    decimal.NewFromInt(64750),
		FifteenRateTop: decimal.NewFromInt(566700),
	},
}

var (
	capGainsRate15 = decimal.NewFromFloat(0.15)
	capGainsRate20 = decimal.NewFromFloat(0.20)
)

// ssThresholds2025 holds the combined-income breakpoints for Social Security
// taxability: up to 50% of benefits taxable above First, up to 85% above
// Second.
type ssThresholds struct {
	First  decimal.Decimal
	Second decimal.Decimal
}

var ssThresholds2025 = map[domain.FilingStatus]ssThresholds{
	domain.FilingSingle: {
		First:  decimal.NewFromInt(25000),
		Second: decimal.NewFromInt(34000),
	},
	domain.FilingMarriedJointly: {
		First:  decimal.NewFromInt(32000),
		Second: decimal.NewFromInt(44000),
	},
	domain.FilingMarriedSeparately: {
		First:  decimal.NewFromInt(25000),
		Second: decimal.NewFromInt(34000),
	},
	domain.FilingHeadOfHousehold: {
		First:  decimal.NewFromInt(25000),
		Second: decimal.NewFromInt(34000),
	},
}

// uniformLifetimeTable2025 is the IRS Uniform Lifetime Table distribution
// period by age. Ages beyond 100 clamp to the age-100 divisor.
var uniformLifetimeTable2025 = map[int]decimal.Decimal{
	72:  decimal.NewFromFloat(27.4),
	73:  decimal.NewFromFloat(26.5),
	74:  decimal.NewFromFloat(25.5),
	75:  decimal.NewFromFloat(24.6),
	76:  decimal.NewFromFloat(23.7),
	77:  decimal.NewFromFloat(22.9),
	78:  decimal.NewFromFloat(22.0),
	79:  decimal.NewFromFloat(21.1),
	80:  decimal.NewFromFloat(20.2),
	81:  decimal.NewFromFloat(19.4),
	82:  decimal.NewFromFloat(18.5),
	83:  decimal.NewFromFloat(17.7),
	84:  decimal.NewFromFloat(16.8),
	85:  decimal.NewFromFloat(16.0),
	86:  decimal.NewFromFloat(15.2),
	87:  decimal.NewFromFloat(14.4),
	88:  decimal.NewFromFloat(13.7),
	89:  decimal.NewFromFloat(12.9),
	90:  decimal.NewFromFloat(12.2),
	91:  decimal.NewFromFloat(11.5),
	92:  decimal.NewFromFloat(10.8),
	93:  decimal.NewFromFloat(10.1),
	94:  decimal.NewFromFloat(9.5),
	95:  decimal.NewFromFloat(8.9),
	96:  decimal.NewFromFloat(8.4),
	97:  decimal.NewFromFloat(7.8),
	98:  decimal.NewFromFloat(7.3),
	99:  decimal.NewFromFloat(6.8),
	100: decimal.NewFromFloat(6.4),
}

// StateTaxTable describes one state's income tax. FlatRate applies when
// Brackets is nil; zero FlatRate with nil Brackets means no income tax.
// Brackets are single-filer; married-filing-jointly limits are doubled.
type StateTaxTable struct {
	Name     string
	FlatRate decimal.Decimal
	Brackets []TaxBracket
}

func flatState(name string, rate float64) StateTaxTable {
	return StateTaxTable{Name: name, FlatRate: decimal.NewFromFloat(rate)}
}

func noTaxState(name string) StateTaxTable {
	return StateTaxTable{Name: name}
}

func bracketState(name string, brackets ...TaxBracket) StateTaxTable {
	return StateTaxTable{Name: name, Brackets: brackets}
}

// stateTaxTables2025 covers the 50 states plus DC, keyed by postal code.
var stateTaxTables2025 = map[string]StateTaxTable{
	// No broad-based income tax
	"AK": noTaxState("Alaska"),
	"FL": noTaxState("Florida"),
	"NV": noTaxState("Nevada"),
	"NH": noTaxState("New Hampshire"),
	"SD": noTaxState("South Dakota"),
	"TN": noTaxState("Tennessee"),
	"TX": noTaxState("Texas"),
	"WA": noTaxState("Washington"),
	"WY": noTaxState("Wyoming"),

	// Flat-rate states
	"AZ": flatState("Arizona", 0.025),
	"CO": flatState("Colorado", 0.044),
	"GA": flatState("Georgia", 0.0539),
	"ID": flatState("Idaho", 0.05695),
	"IL": flatState("Illinois", 0.0495),
	"IN": flatState("Indiana", 0.03),
	"IA": flatState("Iowa", 0.038),
	"KY": flatState("Kentucky", 0.04),
	"LA": flatState("Louisiana", 0.03),
	"MA": flatState("Massachusetts", 0.05),
	"MI": flatState("Michigan", 0.0425),
	"MS": flatState("Mississippi", 0.047),
	"NC": flatState("North Carolina", 0.0425),
	"PA": flatState("Pennsylvania", 0.0307),
	"UT": flatState("Utah", 0.0455),

	// Progressive states (single-filer brackets)
	"AL": bracketState("Alabama",
		bracket(0, 500, 0.02), bracket(500, 3000, 0.04), topBracket(3000, 0.05)),
	"AR": bracketState("Arkansas",
		bracket(0, 4400, 0.02), bracket(4400, 8800, 0.03), topBracket(8800, 0.039)),
	"CA": bracketState("California",
		bracket(0, 10756, 0.01), bracket(10756, 25499, 0.02), bracket(25499, 40245, 0.04),
		bracket(40245, 55866, 0.06), bracket(55866, 70606, 0.08), bracket(70606, 360659, 0.093),
		bracket(360659, 432787, 0.103), bracket(432787, 721314, 0.113), topBracket(721314, 0.123)),
	"CT": bracketState("Connecticut",
		bracket(0, 10000, 0.02), bracket(10000, 50000, 0.045), bracket(50000, 100000, 0.055),
		bracket(100000, 200000, 0.06), bracket(200000, 250000, 0.065), bracket(250000, 500000, 0.069),
		topBracket(500000, 0.0699)),
	"DE": bracketState("Delaware",
		bracket(0, 2000, 0.0), bracket(2000, 5000, 0.022), bracket(5000, 10000, 0.039),
		bracket(10000, 20000, 0.048), bracket(20000, 25000, 0.052), bracket(25000, 60000, 0.0555),
		topBracket(60000, 0.066)),
	"DC": bracketState("District of Columbia",
		bracket(0, 10000, 0.04), bracket(10000, 40000, 0.06), bracket(40000, 60000, 0.065),
		bracket(60000, 250000, 0.085), bracket(250000, 500000, 0.0925), bracket(500000, 1000000, 0.0975),
		topBracket(1000000, 0.1075)),
	"HI": bracketState("Hawaii",
		bracket(0, 2400, 0.014), bracket(2400, 4800, 0.032), bracket(4800, 9600, 0.055),
		bracket(9600, 14400, 0.064), bracket(14400, 19200, 0.068), bracket(19200, 24000, 0.072),
		bracket(24000, 36000, 0.076), bracket(36000, 48000, 0.079), topBracket(48000, 0.0825)),
	"KS": bracketState("Kansas",
		bracket(0, 23000, 0.052), topBracket(23000, 0.0558)),
	"ME": bracketState("Maine",
		bracket(0, 26050, 0.058), bracket(26050, 61600, 0.0675), topBracket(61600, 0.0715)),
	"MD": bracketState("Maryland",
		bracket(0, 1000, 0.02), bracket(1000, 2000, 0.03), bracket(2000, 3000, 0.04),
		bracket(3000, 100000, 0.0475), bracket(100000, 125000, 0.05), bracket(125000, 150000, 0.0525),
		bracket(150000, 250000, 0.055), topBracket(250000, 0.0575)),
	"MN": bracketState("Minnesota",
		bracket(0, 31690, 0.0535), bracket(31690, 104090, 0.068), bracket(104090, 193240, 0.0785),
		topBracket(193240, 0.0985)),
	"MO": bracketState("Missouri",
		bracket(0, 1273, 0.02), bracket(1273, 2546, 0.025), bracket(2546, 3819, 0.03),
		bracket(3819, 5092, 0.035), bracket(5092, 6365, 0.04), bracket(6365, 7638, 0.045),
		topBracket(7638, 0.047)),
	"MT": bracketState("Montana",
		bracket(0, 21100, 0.047), topBracket(21100, 0.059)),
	"NE": bracketState("Nebraska",
		bracket(0, 3700, 0.0246), bracket(3700, 22170, 0.0351), bracket(22170, 35730, 0.0501),
		topBracket(35730, 0.0584)),
	"NJ": bracketState("New Jersey",
		bracket(0, 20000, 0.014), bracket(20000, 35000, 0.0175), bracket(35000, 40000, 0.035),
		bracket(40000, 75000, 0.05525), bracket(75000, 500000, 0.0637), bracket(500000, 1000000, 0.0897),
		topBracket(1000000, 0.1075)),
	"NM": bracketState("New Mexico",
		bracket(0, 5500, 0.017), bracket(5500, 11000, 0.032), bracket(11000, 16000, 0.047),
		bracket(16000, 210000, 0.049), topBracket(210000, 0.059)),
	"NY": bracketState("New York",
		bracket(0, 8500, 0.04), bracket(8500, 11700, 0.045), bracket(11700, 13900, 0.0525),
		bracket(13900, 80650, 0.055), bracket(80650, 215400, 0.06), bracket(215400, 1077550, 0.0685),
		topBracket(1077550, 0.0965)),
	"ND": bracketState("North Dakota",
		bracket(0, 44725, 0.0), bracket(44725, 225975, 0.0195), topBracket(225975, 0.025)),
	"OH": bracketState("Ohio",
		bracket(0, 26050, 0.0), bracket(26050, 100000, 0.0275), topBracket(100000, 0.035)),
	"OK": bracketState("Oklahoma",
		bracket(0, 1000, 0.0025), bracket(1000, 2500, 0.0075), bracket(2500, 3750, 0.0175),
		bracket(3750, 4900, 0.0275), bracket(4900, 7200, 0.0375), topBracket(7200, 0.0475)),
	"OR": bracketState("Oregon",
		bracket(0, 4300, 0.0475), bracket(4300, 10750, 0.0675), bracket(10750, 125000, 0.0875),
		topBracket(125000, 0.099)),
	"RI": bracketState("Rhode Island",
		bracket(0, 77450, 0.0375), bracket(77450, 176050, 0.0475), topBracket(176050, 0.0599)),
	"SC": bracketState("South Carolina",
		bracket(0, 3460, 0.0), bracket(3460, 17330, 0.03), topBracket(17330, 0.062)),
	"VA": bracketState("Virginia",
		bracket(0, 3000, 0.02), bracket(3000, 5000, 0.03), bracket(5000, 17000, 0.05),
		topBracket(17000, 0.0575)),
	"VT": bracketState("Vermont",
		bracket(0, 45400, 0.0335), bracket(45400, 110050, 0.066), bracket(110050, 229550, 0.076),
		topBracket(229550, 0.0875)),
	"WV": bracketState("West Virginia",
		bracket(0, 10000, 0.0236), bracket(10000, 25000, 0.0315), bracket(25000, 40000, 0.0354),
		bracket(40000, 60000, 0.0472), topBracket(60000, 0.0512)),
	"WI": bracketState("Wisconsin",
		bracket(0, 14320, 0.035), bracket(14320, 28640, 0.044), bracket(28640, 315310, 0.053),
		topBracket(315310, 0.0765)),
}

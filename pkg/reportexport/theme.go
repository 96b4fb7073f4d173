package reportexport

import (
	"fmt"
	"strings"
)

// Section identifies the dashboard area a report belongs to.
type Section string

const (
	SectionDefault   Section = "default"
	SectionProducts  Section = "products"
	SectionInventory Section = "inventory"
	SectionSupplies  Section = "supplies"
	SectionSales     Section = "sales"
	SectionCrops     Section = "crops"
	SectionLivestock Section = "livestock"
)

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B int
}

// Hex renders the colour as RRGGBB, the form excelize expects.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Theme is the per-section visual identity.
type Theme struct {
	Section Section
	Title   string
	Primary RGB
	Accent  RGB
}

const brandMark = "FarmNex"

var (
	colorSuccess   = RGB{22, 163, 74}
	colorWarning   = RGB{217, 119, 6}
	colorError     = RGB{220, 38, 38}
	colorInfo      = RGB{37, 99, 235}
	colorText      = RGB{31, 41, 55}
	colorMuted     = RGB{107, 114, 128}
	colorWhite     = RGB{255, 255, 255}
	colorStripe    = RGB{248, 250, 252}
	colorGrid      = RGB{226, 232, 240}
	colorBrandDark = RGB{21, 128, 61}
)

// ParseSection maps a free-form identifier onto a known section.
func ParseSection(s string) Section {
	switch sec := Section(strings.ToLower(strings.TrimSpace(s))); sec {
	case SectionProducts, SectionInventory, SectionSupplies, SectionSales, SectionCrops, SectionLivestock:
		return sec
	default:
		return SectionDefault
	}
}

// ThemeFor always resolves; unknown sections get the default theme.
func ThemeFor(s Section) Theme {
	switch s {
	case SectionProducts:
		return Theme{Section: s, Title: "Product Catalogue Report", Primary: RGB{34, 197, 94}, Accent: RGB{220, 252, 231}}
	case SectionInventory:
		return Theme{Section: s, Title: "Inventory Report", Primary: RGB{13, 148, 136}, Accent: RGB{204, 251, 241}}
	case SectionSupplies:
		return Theme{Section: s, Title: "Farm Supplies Report", Primary: RGB{234, 88, 12}, Accent: RGB{255, 237, 213}}
	case SectionSales:
		return Theme{Section: s, Title: "Sales Report", Primary: RGB{37, 99, 235}, Accent: RGB{219, 234, 254}}
	case SectionCrops:
		return Theme{Section: s, Title: "Crop Planning Report", Primary: RGB{101, 163, 13}, Accent: RGB{236, 252, 203}}
	case SectionLivestock:
		return Theme{Section: s, Title: "Livestock Report", Primary: RGB{180, 83, 9}, Accent: RGB{254, 243, 199}}
	default:
		return Theme{Section: SectionDefault, Title: "FarmNex Dashboard Report", Primary: RGB{34, 197, 94}, Accent: RGB{240, 253, 244}}
	}
}

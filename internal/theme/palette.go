package theme

// BrandColors are the marketing accent colors.
type BrandColors struct {
	Red    string `json:"red"`
	Pink   string `json:"pink"`
	Purple string `json:"purple"`
	Blue   string `json:"blue"`
	Marine string `json:"marine"`
	Dusk   string `json:"dusk"`
	Green  string `json:"green"`
	Yellow string `json:"yellow"`
}

// Palette maps every named color role to a concrete color value.
type Palette struct {
	Transparent  string `json:"transparent"`
	AlmostBlack  string `json:"almostBlack"`
	LightBlack   string `json:"lightBlack"`
	AlmostWhite  string `json:"almostWhite"`
	VeryDarkBlue string `json:"veryDarkBlue"`
	Slate        string `json:"slate"`
	SlateLight   string `json:"slateLight"`
	SlateDark    string `json:"slateDark"`
	Smoke        string `json:"smoke"`
	SmokeLight   string `json:"smokeLight"`
	SmokeDark    string `json:"smokeDark"`
	White        string `json:"white"`
	White05      string `json:"white05"`
	White10      string `json:"white10"`
	White50      string `json:"white50"`
	White75      string `json:"white75"`
	Black        string `json:"black"`
	Black05      string `json:"black05"`
	Black10      string `json:"black10"`
	Black50      string `json:"black50"`
	Black75      string `json:"black75"`
	Accent       string `json:"accent"`
	Yellow       string `json:"yellow"`
	WarmGrey     string `json:"warmGrey"`
	Danger       string `json:"danger"`
	Warning      string `json:"warning"`
	Success      string `json:"success"`
	Info         string `json:"info"`

	Brand BrandColors `json:"brand"`
}

// DefaultPalette returns the baseline palette.
func DefaultPalette() Palette {
	return Palette{
		Transparent:  "transparent",
		AlmostBlack:  "#111319",
		LightBlack:   "#2F3336",
		AlmostWhite:  "#E6E6E6",
		VeryDarkBlue: "#08090C",
		Slate:        "#66778F",
		SlateLight:   "#DAE1E9",
		SlateDark:    "#394351",
		Smoke:        "#F4F7FA",
		SmokeLight:   "#F9FBFC",
		SmokeDark:    "#E8EBED",
		White:        "#FFFFFF",
		White05:      "rgba(255, 255, 255, 0.05)",
		White10:      "rgba(255, 255, 255, 0.1)",
		White50:      "rgba(255, 255, 255, 0.5)",
		White75:      "rgba(255, 255, 255, 0.75)",
		Black:        "#000",
		Black05:      "rgba(0, 0, 0, 0.05)",
		Black10:      "rgba(0, 0, 0, 0.1)",
		Black50:      "rgba(0, 0, 0, 0.50)",
		Black75:      "rgba(0, 0, 0, 0.75)",
		Accent:       "#0366d6",
		Yellow:       "#EDBA07",
		WarmGrey:     "#EDF2F7",
		Danger:       "#ed2651",
		Warning:      "#f08a24",
		Success:      "#2f3336",
		Info:         "#a0d3e8",
		Brand: BrandColors{
			Red:    "#FF5C80",
			Pink:   "#FF4DFA",
			Purple: "#9E5CF7",
			Blue:   "#3633FF",
			Marine: "#2BC2FF",
			Dusk:   "#2930FF",
			Green:  "#3ad984",
			Yellow: "#F5BE31",
		},
	}
}

// RosePinePalette returns the Rosé Pine palette mapped onto the same roles.
func RosePinePalette() Palette {
	return Palette{
		Transparent:  "transparent",
		AlmostBlack:  "#191724", // Base
		LightBlack:   "#26233a", // Overlay
		AlmostWhite:  "#e0def4", // Text
		VeryDarkBlue: "#191724", // Base
		Slate:        "#6e6a86", // Muted
		SlateLight:   "#908caa", // Subtle
		SlateDark:    "#26233a", // Overlay
		Smoke:        "#1f1d2e", // Surface
		SmokeLight:   "#21202e", // Highlight Low
		SmokeDark:    "#403d52", // Highlight Med
		White:        "#e0def4", // Text
		White05:      "rgba(224, 222, 244, 0.05)",
		White10:      "rgba(224, 222, 244, 0.1)",
		White50:      "rgba(224, 222, 244, 0.5)",
		White75:      "rgba(224, 222, 244, 0.75)",
		Black:        "#191724", // Base
		Black05:      "rgba(25, 23, 36, 0.05)",
		Black10:      "rgba(25, 23, 36, 0.1)",
		Black50:      "rgba(25, 23, 36, 0.50)",
		Black75:      "rgba(25, 23, 36, 0.75)",
		Accent:       "#c4a7e7", // Iris
		Yellow:       "#f6c177", // Gold
		WarmGrey:     "#1f1d2e", // Surface
		Danger:       "#eb6f92", // Love
		Warning:      "#f6c177", // Gold
		Success:      "#31748f", // Pine
		Info:         "#9ccfd8", // Foam
		Brand: BrandColors{
			Red:    "#eb6f92", // Love
			Pink:   "#ebbcba", // Rose
			Purple: "#c4a7e7", // Iris
			Blue:   "#31748f", // Pine
			Marine: "#9ccfd8", // Foam
			Dusk:   "#c4a7e7", // Iris
			Green:  "#31748f", // Pine
			Yellow: "#f6c177", // Gold
		},
	}
}

// paletteRoles is the ordered role list; brand roles are dotted.
var paletteRoles = []string{
	"transparent", "almostBlack", "lightBlack", "almostWhite", "veryDarkBlue",
	"slate", "slateLight", "slateDark", "smoke", "smokeLight", "smokeDark",
	"white", "white05", "white10", "white50", "white75",
	"black", "black05", "black10", "black50", "black75",
	"accent", "yellow", "warmGrey", "danger", "warning", "success", "info",
	"brand.red", "brand.pink", "brand.purple", "brand.blue",
	"brand.marine", "brand.dusk", "brand.green", "brand.yellow",
}

// PaletteRoles lists every palette role name in declaration order.
func PaletteRoles() []string {
	return append([]string(nil), paletteRoles...)
}

// Role returns the value of the named role and whether the name is a role.
func (p *Palette) Role(name string) (string, bool) {
	ptr := p.role(name)
	if ptr == nil {
		return "", false
	}
	return *ptr, true
}

// SetRole assigns the named role. It reports false for unknown names.
func (p *Palette) SetRole(name, value string) bool {
	ptr := p.role(name)
	if ptr == nil {
		return false
	}
	*ptr = value
	return true
}

func (p *Palette) role(name string) *string {
	switch name {
	case "transparent":
		return &p.Transparent
	case "almostBlack":
		return &p.AlmostBlack
	case "lightBlack":
		return &p.LightBlack
	case "almostWhite":
		return &p.AlmostWhite
	case "veryDarkBlue":
		return &p.VeryDarkBlue
	case "slate":
		return &p.Slate
	case "slateLight":
		return &p.SlateLight
	case "slateDark":
		return &p.SlateDark
	case "smoke":
		return &p.Smoke
	case "smokeLight":
		return &p.SmokeLight
	case "smokeDark":
		return &p.SmokeDark
	case "white":
		return &p.White
	case "white05":
		return &p.White05
	case "white10":
		return &p.White10
	case "white50":
		return &p.White50
	case "white75":
		return &p.White75
	case "black":
		return &p.Black
	case "black05":
		return &p.Black05
	case "black10":
		return &p.Black10
	case "black50":
		return &p.Black50
	case "black75":
		return &p.Black75
	case "accent":
		return &p.Accent
	case "yellow":
		return &p.Yellow
	case "warmGrey":
		return &p.WarmGrey
	case "danger":
		return &p.Danger
	case "warning":
		return &p.Warning
	case "success":
		return &p.Success
	case "info":
		return &p.Info
	case "brand.red":
		return &p.Brand.Red
	case "brand.pink":
		return &p.Brand.Pink
	case "brand.purple":
		return &p.Brand.Purple
	case "brand.blue":
		return &p.Brand.Blue
	case "brand.marine":
		return &p.Brand.Marine
	case "brand.dusk":
		return &p.Brand.Dusk
	case "brand.green":
		return &p.Brand.Green
	case "brand.yellow":
		return &p.Brand.Yellow
	}
	return nil
}

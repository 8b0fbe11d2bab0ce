// Package icons is the closed set of item icons and colors a style may name.
package icons

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Icon is a named glyph shown next to an item.
type Icon struct {
	Name  string
	Glyph string
}

// Fallback is returned for names outside the registry.
var Fallback = Icon{Name: "", Glyph: "•"}

var registry = map[string]string{
	"Activity":       "〰",
	"Bike":           "🚲",
	"Banana":         "🍌",
	"BookOpen":       "📖",
	"BicepsFlexed":   "💪",
	"Briefcase":      "💼",
	"Camera":         "📷",
	"Car":            "🚗",
	"ChartPie":       "◔",
	"Cloud":          "☁",
	"Coffee":         "☕",
	"Compass":        "🧭",
	"CreditCard":     "💳",
	"Dumbbell":       "🏋",
	"Ear":            "👂",
	"Feather":        "🪶",
	"Footprints":     "👣",
	"Film":           "🎞",
	"Flag":           "⚑",
	"Flame":          "🔥",
	"Gift":           "🎁",
	"Globe":          "🌐",
	"GraduationCap":  "🎓",
	"Headphones":     "🎧",
	"Heart":          "♥",
	"HeartHandshake": "🤝",
	"Infinity":       "∞",
	"Keyboard":       "⌨",
	"Laptop":         "💻",
	"Lightbulb":      "💡",
	"Link":           "🔗",
	"MapPin":         "📍",
	"Mic":            "🎤",
	"Moon":           "☾",
	"Music":          "♪",
	"Navigation":     "➤",
	"Package":        "📦",
	"Palette":        "🎨",
	"Paperclip":      "📎",
	"PersonStanding": "🧍",
	"Phone":          "☎",
	"Puzzle":         "🧩",
	"Save":           "💾",
	"Scissors":       "✂",
	"Settings":       "⚙",
	"Shield":         "🛡",
	"ShoppingBag":    "🛍",
	"ShoppingCart":   "🛒",
	"Smile":          "☺",
	"Star":           "★",
	"Sun":            "☀",
	"Target":         "◎",
	"ThumbsUp":       "👍",
	"TrendingUp":     "↗",
	"Truck":          "🚚",
	"Tv":             "📺",
	"User":           "👤",
	"Users":          "👥",
	"Video":          "📹",
	"Voicemail":      "⌕",
	"Volume2":        "🔊",
	"Wallet":         "👛",
	"Watch":          "⌚",
	"Wind":           "🌬",
	"Zap":            "⚡",
}

// Lookup returns the icon registered under name, or Fallback.
func Lookup(name string) Icon {
	if glyph, ok := registry[name]; ok {
		return Icon{Name: name, Glyph: glyph}
	}
	return Fallback
}

// Known reports whether name is in the registry.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names lists registered icon names alphabetically.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Palette is the set of item colors offered by the item editor.
var Palette = []string{
	"#B80000",
	"#DB3E00",
	"#FF5733",
	"#008B02",
	"#32CD32",
	"#006B76",
	"#007F7F",
	"#1273DE",
	"#6495ED",
	"#004DCF",
	"#000066",
	"#5300EB",
	"#9966CC",
	"#C69300",
	"#DAA520",
	"#A52A2A",
	"#666666",
}

// Badge renders the icon for name tinted with color. An empty color leaves
// the terminal default.
func Badge(name, color string) string {
	style := lipgloss.NewStyle()
	if color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	return style.Render(Lookup(name).Glyph)
}

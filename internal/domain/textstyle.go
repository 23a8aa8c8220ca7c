package domain

type TextStyle struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Subtitle   string  `json:"subtitle"`
	FontFamily string  `json:"fontFamily"`
	Color      string  `json:"color"`
	SizePct    float64 `json:"sizePct"`
}

// CSSFamily returns the family with a generic fallback appended.
func (s TextStyle) CSSFamily() string {
	return s.FontFamily + ", sans-serif"
}

var TextStyles = []TextStyle{
	{ID: "t1", Title: "Bold Title", Subtitle: "Large white", FontFamily: "Arial", Color: "#ffffff", SizePct: 0.08},
	{ID: "t2", Title: "Sub Title", Subtitle: "Medium gray", FontFamily: "Georgia", Color: "#e6e6e6", SizePct: 0.05},
	{ID: "t3", Title: "Caps Logo", Subtitle: "Small white", FontFamily: "Impact", Color: "#ffffff", SizePct: 0.06},
	{ID: "t4", Title: "Accent", Subtitle: "Blue", FontFamily: "Tahoma", Color: "#149ECA", SizePct: 0.045},
	{ID: "t5", Title: "Muted", Subtitle: "Light gray", FontFamily: "Verdana", Color: "#cfcfcf", SizePct: 0.05},
	{ID: "t6", Title: "Overlay", Subtitle: "Bold small", FontFamily: "Helvetica", Color: "#ffffff", SizePct: 0.04},
}

// DefaultTextStyle backs custom free-text entries.
var DefaultTextStyle = TextStyles[0]

func TextStyleByID(id string) (TextStyle, bool) {
	for _, s := range TextStyles {
		if s.ID == id {
			return s, true
		}
	}
	return TextStyle{}, false
}

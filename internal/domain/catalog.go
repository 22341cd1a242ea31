package domain

import "time"

// Creator is a public creator profile as shown on the storefront.
type Creator struct {
	ID        string
	Name      string
	AvatarURL *string
	Category  string
	Bio       *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VideoAd is a bookable video-greeting listing.
type VideoAd struct {
	ID             string
	CreatorID      string
	Title          string
	Description    string
	Price          float64
	Duration       string
	ThumbnailURL   *string
	SampleVideoURL *string
	Requirements   *string
	Active         bool
	Creator        *Creator
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Category is an admin-managed browse category.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	Active      bool   `json:"active"`
}

// DefaultCategories is the fallback browse list used when the admin
// dictionary is empty or unavailable.
var DefaultCategories = []string{"musician", "actor", "comedian", "athlete", "influencer", "artist"}

// categoryCodes maps the Hebrew admin labels to the category codes
// stored on creator rows.
var categoryCodes = map[string]string{
	"מוזיקאי": "musician",
	"שחקן":    "actor",
	"קומיקאי": "comedian",
	"ספורטאי": "athlete",
	"משפיען":  "influencer",
	"אמן":     "artist",
}

// CategoryCode resolves an admin label to its stored code. Labels
// without a mapping pass through unchanged.
func CategoryCode(label string) string {
	if code, ok := categoryCodes[label]; ok {
		return code
	}
	return label
}

package models

// Polaroid is a single card on the wall: an uploaded image plus the caption
// and date written underneath it.
type Polaroid struct {
	ID      string `json:"id"`
	Image   string `json:"image"`
	Caption string `json:"caption"`
	Date    string `json:"date"`
}

func NewPolaroid(image, caption, date string) Polaroid {
	return Polaroid{
		Image:   image,
		Caption: caption,
		Date:    date,
	}
}

// PolaroidUpdate carries the mutable fields of a polaroid. A nil field is left
// untouched.
type PolaroidUpdate struct {
	Caption *string `json:"caption"`
	Date    *string `json:"date"`
}

// Apply returns a copy of p with the supplied fields replaced
func (u PolaroidUpdate) Apply(p Polaroid) Polaroid {
	if u.Caption != nil {
		p.Caption = *u.Caption
	}
	if u.Date != nil {
		p.Date = *u.Date
	}
	return p
}

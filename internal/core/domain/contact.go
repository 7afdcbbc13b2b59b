package domain

type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	WhatsApp  string `json:"whatsapp"`
}

type OpeningHours struct {
	Reception   string `json:"reception"`
	Restaurant  string `json:"restaurant"`
	RoomService string `json:"roomService"`
}

type ContactInfo struct {
	Phone   string       `json:"phone"`
	Email   string       `json:"email"`
	Address string       `json:"address"`
	Social  SocialLinks  `json:"social"`
	Hours   OpeningHours `json:"hours"`
}

// DefaultContactInfo is served whenever the backend omits a field.
func DefaultContactInfo() ContactInfo {
	return ContactInfo{
		Phone:   "+57 300 000 0000",
		Email:   "reception@hotel.example",
		Address: "Calle 1 # 2-3, Centro",
		Social: SocialLinks{
			Facebook:  "https://facebook.com/hotel",
			Instagram: "https://instagram.com/hotel",
			WhatsApp:  "https://wa.me/573000000000",
		},
		Hours: OpeningHours{
			Reception:   "24/7",
			Restaurant:  "06:00 - 22:00",
			RoomService: "24/7",
		},
	}
}

type PartialSocialLinks struct {
	Facebook  *string `json:"facebook,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	WhatsApp  *string `json:"whatsapp,omitempty"`
}

type PartialOpeningHours struct {
	Reception   *string `json:"reception,omitempty"`
	Restaurant  *string `json:"restaurant,omitempty"`
	RoomService *string `json:"roomService,omitempty"`
}

// PartialContactInfo is what the contact endpoint returns. Nil fields keep
// the default.
type PartialContactInfo struct {
	Phone   *string              `json:"phone,omitempty"`
	Email   *string              `json:"email,omitempty"`
	Address *string              `json:"address,omitempty"`
	Social  *PartialSocialLinks  `json:"social,omitempty"`
	Hours   *PartialOpeningHours `json:"hours,omitempty"`
}

// Merge overlays the non-empty fields of p on base.
func (p PartialContactInfo) Merge(base ContactInfo) ContactInfo {
	out := base
	set(&out.Phone, p.Phone)
	set(&out.Email, p.Email)
	set(&out.Address, p.Address)
	if p.Social != nil {
		set(&out.Social.Facebook, p.Social.Facebook)
		set(&out.Social.Instagram, p.Social.Instagram)
		set(&out.Social.WhatsApp, p.Social.WhatsApp)
	}
	if p.Hours != nil {
		set(&out.Hours.Reception, p.Hours.Reception)
		set(&out.Hours.Restaurant, p.Hours.Restaurant)
		set(&out.Hours.RoomService, p.Hours.RoomService)
	}
	return out
}

func set(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

package domain

type Document struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type Guest struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Document  Document `json:"document"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
}

func (g Guest) EntityID() string { return g.ID }

func (g Guest) FullName() string {
	switch {
	case g.FirstName == "":
		return g.LastName
	case g.LastName == "":
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}

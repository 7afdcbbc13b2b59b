package domain

type CatalogItem struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Icon        string `json:"icon"`
	Available   bool   `json:"available"`
}

func (c CatalogItem) EntityID() string { return c.ID }

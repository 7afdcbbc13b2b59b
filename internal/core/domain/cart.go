package domain

type CartLine struct {
	ItemID   string `json:"id" validate:"required"`
	Price    int64  `json:"price" validate:"gte=0"`
	Quantity int    `json:"qty" validate:"gt=0"`
}

// Cart is owned by the caller. Dispatchers clear it only once the order
// has been acknowledged by the backend.
type Cart struct {
	Lines []CartLine `json:"items" validate:"required,min=1,dive"`
}

func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Clear() {
	c.Lines = nil
}

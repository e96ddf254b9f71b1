package model

// Product is a catalog entry. Orders copy name, image and price into item
// snapshots at checkout, so later catalog edits never touch placed orders.
type Product struct {
	ID       int64
	Name     string
	ImageURL string
	Price    float64
}

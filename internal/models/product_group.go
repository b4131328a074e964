package models

// ProductGroup is a named category owning zero or more products.
//
// The in-memory association with Product is bidirectional and must never
// disagree between the two sides, so mutation goes through AttachProduct and
// DetachProduct only; there is no raw setter for just one side.
type ProductGroup struct {
	ID          int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Description string     `json:"description" gorm:"type:varchar(120);not null"`
	Status      Status     `json:"status" gorm:"not null"`
	Products    []*Product `json:"products,omitempty" gorm:"foreignKey:GroupID"`
}

// AttachProduct adds p to the group's collection and points p back at the
// group in the same operation.
func (g *ProductGroup) AttachProduct(p *Product) {
	if p == nil {
		return
	}
	g.Products = append(g.Products, p)
	p.Group = g
	p.GroupID = g.ID
}

// DetachProduct removes p from the group's collection and clears the
// back-reference, but only when p actually belongs to this group. Detaching
// a product the group does not own leaves both sides unchanged.
func (g *ProductGroup) DetachProduct(p *Product) {
	if p == nil {
		return
	}
	for i, member := range g.Products {
		if member == p {
			g.Products = append(g.Products[:i], g.Products[i+1:]...)
			if p.Group == g {
				p.Group = nil
				p.GroupID = 0
			}
			return
		}
	}
}

package models

// Category groups assets by kind, e.g. "Laptops".
type Category struct {
	ID          int64   `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description *string `json:"description" gorm:"size:255"`
}

// AutoCategoryDescription is the description given to categories created
// implicitly from an asset payload.
func AutoCategoryDescription(name string) string {
	return "Auto-created category: " + name
}

// NewCategoryFromPayload requires name; description is optional.
func NewCategoryFromPayload(p Payload) (*Category, error) {
	var c Category
	if err := c.ApplyPayload(p); err != nil {
		return nil, err
	}
	return &c, nil
}

// ApplyPayload replaces both columns: name is required on every write and an
// absent description is cleared.
func (c *Category) ApplyPayload(p Payload) error {
	name, err := p.RequiredString("name")
	if err != nil {
		return err
	}
	desc, err := p.StringOr("description", nil)
	if err != nil {
		return err
	}
	c.Name, c.Description = name, desc
	return nil
}

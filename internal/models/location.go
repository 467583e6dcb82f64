package models

// Location is a physical place assets are kept at.
type Location struct {
	ID      int64   `json:"id" gorm:"primaryKey"`
	Name    string  `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Address *string `json:"address" gorm:"size:255"`
}

// AutoLocationAddress is the address given to locations created implicitly
// from an asset payload.
func AutoLocationAddress(name string) string {
	return "Auto-created location: " + name
}

// NewLocationFromPayload requires name; address is optional.
func NewLocationFromPayload(p Payload) (*Location, error) {
	var l Location
	if err := l.ApplyPayload(p); err != nil {
		return nil, err
	}
	return &l, nil
}

// ApplyPayload replaces both columns, like Category.ApplyPayload.
func (l *Location) ApplyPayload(p Payload) error {
	name, err := p.RequiredString("name")
	if err != nil {
		return err
	}
	addr, err := p.StringOr("address", nil)
	if err != nil {
		return err
	}
	l.Name, l.Address = name, addr
	return nil
}

package models

const (
	// DefaultAssetStatus is applied when an asset is created without a status.
	// Observed values include Active, In Repair, Pending Scrap Approval,
	// Scrapped and Disposed; the column is free text.
	DefaultAssetStatus = "Active"
	// DefaultWarrantyStatus is applied when an asset is created without a
	// warranty status.
	DefaultWarrantyStatus = "In Warranty"
)

// Asset represents the core asset record
type Asset struct {
	ID               int64   `json:"id" gorm:"primaryKey"`
	AssetCode        string  `json:"asset_code" gorm:"size:100;not null;uniqueIndex"`
	SerialNumber     string  `json:"serial_number" gorm:"size:100;not null;uniqueIndex"`
	CapitalDate      *Date   `json:"capital_date"`
	Year             *int    `json:"year"`
	AssetType        *string `json:"asset_type" gorm:"size:100"`
	AssetDescription *string `json:"asset_description" gorm:"size:255"`
	Make             *string `json:"make" gorm:"size:100"`
	Model            *string `json:"model" gorm:"size:100"`
	Status           *string `json:"status" gorm:"size:50"`
	Department       *string `json:"department" gorm:"size:100"`
	Division         *string `json:"division" gorm:"size:100"`
	PlantCode        *string `json:"plant_code" gorm:"size:50"`
	WarrantyStatus   *string `json:"warranty_status" gorm:"size:50"`
	ExpiryDate       *Date   `json:"expiry_date"`
	CategoryID       int64   `json:"category_id" gorm:"not null;index"`
	LocationID       int64   `json:"location_id" gorm:"not null;index"`
	UserID           *int64  `json:"user_id" gorm:"index"`

	Category *Category `json:"-"`
	Location *Location `json:"-"`
	User     *User     `json:"-"`
}

// AssetView is an asset with the display names of the records it references.
type AssetView struct {
	Asset
	CategoryName *string `json:"category_name"`
	LocationName *string `json:"location_name"`
	UserName     *string `json:"user_name"`
}

// NewAssetView denormalizes the loaded relations of a. A relation that was
// not loaded, or points at a missing row, renders as null.
func NewAssetView(a Asset) AssetView {
	v := AssetView{Asset: a}
	if a.Category != nil {
		v.CategoryName = StringPtr(a.Category.Name)
	}
	if a.Location != nil {
		v.LocationName = StringPtr(a.Location.Name)
	}
	if a.User != nil {
		v.UserName = StringPtr(a.User.Name)
	}
	return v
}

// AssetRefs are the category and location an asset payload points at, by name.
type AssetRefs struct {
	CategoryName string
	LocationName string
}

func (a *Asset) textFields() []stringField {
	return []stringField{
		{"asset_type", &a.AssetType},
		{"asset_description", &a.AssetDescription},
		{"make", &a.Make},
		{"model", &a.Model},
		{"status", &a.Status},
		{"department", &a.Department},
		{"division", &a.Division},
		{"plant_code", &a.PlantCode},
		{"warranty_status", &a.WarrantyStatus},
	}
}

// NewAssetFromPayload validates a create payload. Category and location are
// returned by name for the caller to resolve; CategoryID and LocationID are
// left zero.
func NewAssetFromPayload(p Payload) (*Asset, AssetRefs, error) {
	var a Asset
	var refs AssetRefs
	var err error
	if a.AssetCode, err = p.RequiredString("asset_code"); err != nil {
		return nil, refs, err
	}
	if a.SerialNumber, err = p.RequiredString("serial_number"); err != nil {
		return nil, refs, err
	}
	if refs.CategoryName, err = p.RequiredString("category_name"); err != nil {
		return nil, refs, err
	}
	if refs.LocationName, err = p.RequiredString("location_name"); err != nil {
		return nil, refs, err
	}
	if err := a.mergeValues(p); err != nil {
		return nil, refs, err
	}
	if a.Status == nil {
		a.Status = StringPtr(DefaultAssetStatus)
	}
	if a.WarrantyStatus == nil {
		a.WarrantyStatus = StringPtr(DefaultWarrantyStatus)
	}
	return &a, refs, nil
}

// ApplyPayload merges an update payload into a. Category and location fall
// back to the names of the currently loaded relations when the payload does
// not carry them.
func (a *Asset) ApplyPayload(p Payload) (AssetRefs, error) {
	var refs AssetRefs
	var current AssetRefs
	if a.Category != nil {
		current.CategoryName = a.Category.Name
	}
	if a.Location != nil {
		current.LocationName = a.Location.Name
	}

	var err error
	if refs.CategoryName, err = p.NameOr("category_name", current.CategoryName); err != nil {
		return refs, err
	}
	if refs.CategoryName == "" {
		return refs, &FieldError{Field: "category_name", Message: "Category name is required for asset update."}
	}
	if refs.LocationName, err = p.NameOr("location_name", current.LocationName); err != nil {
		return refs, err
	}
	if refs.LocationName == "" {
		return refs, &FieldError{Field: "location_name", Message: "Location name is required for asset update."}
	}

	if a.AssetCode, err = p.NonEmptyStringOr("asset_code", a.AssetCode); err != nil {
		return refs, err
	}
	if a.SerialNumber, err = p.NonEmptyStringOr("serial_number", a.SerialNumber); err != nil {
		return refs, err
	}
	return refs, a.mergeValues(p)
}

// mergeValues applies every optional column of p onto a.
func (a *Asset) mergeValues(p Payload) error {
	var err error
	if a.CapitalDate, err = p.DateOr("capital_date", a.CapitalDate); err != nil {
		return err
	}
	if a.ExpiryDate, err = p.DateOr("expiry_date", a.ExpiryDate); err != nil {
		return err
	}
	if a.Year, err = p.IntOr("year", a.Year); err != nil {
		return err
	}
	if a.UserID, err = p.Int64Or("user_id", a.UserID); err != nil {
		return err
	}
	return mergeStrings(p, a.textFields())
}

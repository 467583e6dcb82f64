package models

// DefaultRole is assigned to users created without a role.
const DefaultRole = "Employee"

// User is an employee who can be assigned assets.
type User struct {
	ID               int64   `json:"id" gorm:"primaryKey"`
	EmpID            string  `json:"emp_id" gorm:"size:50;not null;uniqueIndex"`
	EmpCode          string  `json:"emp_code" gorm:"size:50;not null;uniqueIndex"`
	Name             string  `json:"name" gorm:"size:100;not null"`
	Email            string  `json:"email" gorm:"size:120;not null;uniqueIndex"`
	Role             *string `json:"role" gorm:"size:50"`
	Department       *string `json:"department" gorm:"size:100"`
	Division         *string `json:"division" gorm:"size:100"`
	JoinDate         *Date   `json:"join_date"`
	Status           *string `json:"status" gorm:"size:50"`
	Location         *string `json:"location" gorm:"size:100"`
	PhoneNumber      *string `json:"phone_number" gorm:"size:20"`
	Designation      *string `json:"designation" gorm:"size:100"`
	ReportingManager *string `json:"reporting_manager" gorm:"size:100"`
}

func (u *User) textFields() []stringField {
	return []stringField{
		{"department", &u.Department},
		{"division", &u.Division},
		{"status", &u.Status},
		{"location", &u.Location},
		{"phone_number", &u.PhoneNumber},
		{"designation", &u.Designation},
		{"reporting_manager", &u.ReportingManager},
	}
}

// NewUserFromPayload builds a user for insertion. emp_id, emp_code, name and
// email are required; role defaults to DefaultRole.
func NewUserFromPayload(p Payload) (*User, error) {
	var u User
	var err error
	if u.EmpID, err = p.RequiredString("emp_id"); err != nil {
		return nil, err
	}
	if u.EmpCode, err = p.RequiredString("emp_code"); err != nil {
		return nil, err
	}
	if u.Name, err = p.RequiredString("name"); err != nil {
		return nil, err
	}
	if u.Email, err = p.RequiredString("email"); err != nil {
		return nil, err
	}
	if u.JoinDate, err = p.DateOr("join_date", nil); err != nil {
		return nil, err
	}
	if u.Role, err = p.StringOr("role", nil); err != nil {
		return nil, err
	}
	if u.Role == nil {
		u.Role = StringPtr(DefaultRole)
	}
	if err := mergeStrings(p, u.textFields()); err != nil {
		return nil, err
	}
	return &u, nil
}

// ApplyPayload merges an update payload into u. Absent fields keep their
// value; join_date follows the date presence rule.
func (u *User) ApplyPayload(p Payload) error {
	var err error
	if u.EmpID, err = p.NonEmptyStringOr("emp_id", u.EmpID); err != nil {
		return err
	}
	if u.EmpCode, err = p.NonEmptyStringOr("emp_code", u.EmpCode); err != nil {
		return err
	}
	if u.Name, err = p.NonEmptyStringOr("name", u.Name); err != nil {
		return err
	}
	if u.Email, err = p.NonEmptyStringOr("email", u.Email); err != nil {
		return err
	}
	if u.JoinDate, err = p.DateOr("join_date", u.JoinDate); err != nil {
		return err
	}
	if u.Role, err = p.StringOr("role", u.Role); err != nil {
		return err
	}
	return mergeStrings(p, u.textFields())
}

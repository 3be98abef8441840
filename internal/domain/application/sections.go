package application

import "rental-intake/internal/domain/validation"

// Problems lists the required personal fields that are blank after trimming.
func (p PersonalInfo) Problems() []validation.FieldError {
	v := validation.New("personalInfo")
	if validation.Blank(p.FullName) {
		v.Add("fullName", "is required")
	}
	if validation.Blank(p.Email) {
		v.Add("email", "is required")
	}
	if validation.Blank(p.Phone) {
		v.Add("phone", "is required")
	}
	return v.Fields
}

func (e EmploymentInfo) Problems() []validation.FieldError {
	v := validation.New("employmentInfo")
	if validation.Blank(e.Employer) {
		v.Add("employer", "is required")
	}
	if validation.Blank(e.Position) {
		v.Add("position", "is required")
	}
	if validation.Blank(e.Income) {
		v.Add("income", "is required")
	}
	return v.Fields
}

func (r RentalHistory) Problems() []validation.FieldError {
	v := validation.New("rentalHistory")
	if validation.Blank(r.CurrentAddress) {
		v.Add("currentAddress", "is required")
	}
	if validation.Blank(r.LengthOfStay) {
		v.Add("lengthOfStay", "is required")
	}
	return v.Fields
}

// Complete reports whether a reference has both name and phone; the
// relationship is informational.
func (r Reference) Complete() bool {
	return !validation.Blank(r.Name) && !validation.Blank(r.Phone)
}

// ReferenceProblems requires at least one complete reference.
func ReferenceProblems(refs []Reference) []validation.FieldError {
	for _, r := range refs {
		if r.Complete() {
			return nil
		}
	}
	return []validation.FieldError{{Field: "references", Message: "at least one reference needs a name and phone"}}
}

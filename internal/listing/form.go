package listing

import (
	"errors"
	"strconv"

	"kaa-web/internal/api"
)

// Form collects every field of a new listing across the two creation steps,
// plus the two ordered URL lists filled by the uploaders.
type Form struct {
	Title              string
	Description        string
	Price              string
	Condition          string
	Negotiable         string
	ListingType        string
	Category           string
	Country            string
	State              string
	City               string
	StreetAddress      string
	Currency           string
	RentCycle          string
	ContactEmail       string
	ContactPhone       string
	ImageURLs          []string
	ProofURLs          []string
}

// Validate checks the form before submission. The first failure is the whole
// answer: one descriptive message, nothing submitted.
func (f *Form) Validate() error {
	if f.Title == "" {
		return errors.New("Title is required")
	}
	if f.Description == "" {
		return errors.New("Description is required")
	}
	price, err := strconv.ParseFloat(f.Price, 64)
	if err != nil || price <= 0 {
		return errors.New("Enter a valid price greater than 0")
	}
	if f.ListingType == "" {
		return errors.New("Listing type is required")
	}
	if f.Category == "" {
		return errors.New("Category is required")
	}
	if f.ContactPhone == "" {
		return errors.New("Contact phone number is required")
	}
	if len(f.ImageURLs) == 0 {
		return errors.New("Upload at least one property image")
	}
	return nil
}

// RemoveImage drops the image URL at index i; out-of-range is ignored.
func (f *Form) RemoveImage(i int) {
	if i >= 0 && i < len(f.ImageURLs) {
		f.ImageURLs = append(f.ImageURLs[:i], f.ImageURLs[i+1:]...)
	}
}

// RemoveProof drops the proof URL at index i; out-of-range is ignored.
func (f *Form) RemoveProof(i int) {
	if i >= 0 && i < len(f.ProofURLs) {
		f.ProofURLs = append(f.ProofURLs[:i], f.ProofURLs[i+1:]...)
	}
}

// Draft packages the form into the creation request body.
func (f *Form) Draft() api.PropertyDraft {
	return api.PropertyDraft{
		Title:                f.Title,
		Description:          f.Description,
		Condition:            f.Condition,
		Negotiable:           f.Negotiable,
		ListingType:          f.ListingType,
		Category:             f.Category,
		Country:              f.Country,
		State:                f.State,
		City:                 f.City,
		StreetAddress:        f.StreetAddress,
		Price:                f.Price,
		Currency:             f.Currency,
		RentCycle:            f.RentCycle,
		ContactEmail:         f.ContactEmail,
		ContactPhoneNumber:   f.ContactPhone,
		ImageURLs:            f.ImageURLs,
		ProofOfOwnershipURLs: f.ProofURLs,
	}
}

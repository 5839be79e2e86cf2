package entity

import (
	"time"
)

// Product is a certification exam offered in the catalog. The catalog is
// read-only from this service's perspective; its lifecycle belongs to an
// external catalog-management process, so most fields are free-form text.
type Product struct {
	LicenseID         string // Primary key.
	LicenseName       string
	LicenseInfo       string
	ExamDate          string // Free-form text, owned by the catalog process.
	Price             string // Free-form text as stored; cart snapshots carry the numeric price.
	ExamLocation      string
	RegistrationStart *time.Time
	RegistrationEnd   *time.Time
	DisplayStatus     int
	CreatedAt         *time.Time
	PictureURL        string
}

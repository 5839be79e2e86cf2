package model

import "time"

// ProductModel maps to the production catalog table.
type ProductModel struct {
	LicenseID         string     `gorm:"column:license_id;type:varchar(100);primaryKey"`
	LicenseName       string     `gorm:"column:license_name;type:varchar(255)"`
	LicenseInfo       string     `gorm:"column:license_info;type:text"`
	ExamDate          string     `gorm:"column:exam_date;type:varchar(255)"`
	Price             string     `gorm:"column:price;type:varchar(100)"`
	ExamLocation      string     `gorm:"column:exam_location;type:varchar(255)"`
	RegistrationStart *time.Time `gorm:"column:registration_start"`
	RegistrationEnd   *time.Time `gorm:"column:registration_end"`
	DisplayStatus     int        `gorm:"column:display_status"`
	CreatedAt         *time.Time `gorm:"column:created_at"`
	PictureURL        string     `gorm:"column:picture_url;type:text"`
}

// TableName overrides the default table name.
func (ProductModel) TableName() string {
	return "app.production"
}

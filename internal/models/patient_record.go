package models

// PatientRecord represents a single patient's stored data row.
// Rows are only ever inserted and deleted; there is no in-place update.
type PatientRecord struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Age         string `gorm:"size:20;not null" json:"age"`
	Gender      string `gorm:"size:20" json:"gender"`
	Contact     string `gorm:"size:50;not null" json:"contact"`
	Address     string `gorm:"size:255" json:"address"`
	Conditions  string `gorm:"type:text" json:"conditions"`
	Medications string `gorm:"type:text" json:"medications"`
	DoctorName  string `gorm:"size:100" json:"doctorName"`
	LastVisit   string `gorm:"size:10;not null" json:"lastVisit"`
	Notes       string `gorm:"type:text" json:"notes"`
}

package model

// Classroom is a physical room students check into.
// StaticQRCode identifies the room for scan-based check-in.
type Classroom struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"size:255;not null"`
	StaticQRCode string  `json:"static_qr_code" gorm:"column:static_qr_code;uniqueIndex;size:255;not null"`
	Location     *string `json:"location" gorm:"size:255"`
}

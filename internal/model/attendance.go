package model

import "time"

// Attendance is a single check-in of a student into a classroom.
// Rows are written once and never updated.
type Attendance struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	StudentID        uint      `json:"student_id" gorm:"not null;index"`
	ClassroomID      uint      `json:"classroom_id" gorm:"not null;index"`
	Timestamp        time.Time `json:"timestamp" gorm:"not null"`
	VerifiedLocation bool      `json:"verified_location" gorm:"default:false"`
	VerifiedFace     bool      `json:"verified_face" gorm:"default:false"`

	Student   *User      `json:"-" gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Classroom *Classroom `json:"-" gorm:"foreignKey:ClassroomID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName keeps the singular table name used by existing deployments.
func (Attendance) TableName() string {
	return "attendance"
}

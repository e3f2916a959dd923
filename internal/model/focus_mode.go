package model

import "time"

// FocusMode is a timed focus session for a student.
// A session is open while ActiveStatus is true and EndTime is nil.
type FocusMode struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	StudentID    uint       `json:"student_id" gorm:"not null;index:idx_focus_student_active,priority:1"`
	StartTime    time.Time  `json:"start_time" gorm:"not null"`
	EndTime      *time.Time `json:"end_time"`
	ActiveStatus bool       `json:"active_status" gorm:"not null;index:idx_focus_student_active,priority:2"`

	Student *User `json:"-" gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

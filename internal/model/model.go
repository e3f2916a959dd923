package model

// Models lists every table managed by the application, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&Classroom{},
		&User{},
		&Attendance{},
		&FocusMode{},
	}
}

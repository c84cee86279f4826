package domain

import "time"

// ShiftType 是班次目录中的一项，code 可以是常规班次代码，
// 也可以是特殊休假代码（hours 为 0）
type ShiftType struct {
	Code        string    `json:"code"`
	Hours       int32     `json:"hours"`
	InitialHour string    `json:"initialHour"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}

// EmployeeShift 是唯一的持久化排班记录，唯一键为 (number_document, shift_date)
type EmployeeShift struct {
	ID             int64     `json:"id"`
	NumberDocument string    `json:"numberDocument"`
	ShiftDate      time.Time `json:"shiftDate"`
	ShiftCode      string    `json:"shiftCode"`
	Break          string    `json:"break"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}

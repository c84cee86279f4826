package domain

import "time"

// 员工的周工时等级，决定适用的排班规则
const (
	WorkingDayFullTime   int32 = 46 // 全职
	WorkingDayReduced    int32 = 36 // 缩减全职
	WorkingDayPartTime24 int32 = 24 // 固定周日兼职
	WorkingDayPartTime16 int32 = 16 // 周末兼职
)

type Employee struct {
	NumberDocument  string    `json:"numberDocument"`
	ManagerDocument *string   `json:"managerDocument"`
	FullName        string    `json:"fullName"`
	WorkingDay      int32     `json:"workingDay"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	Version         int32     `json:"-"`
}

package schedule

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDateFormat = errors.New("无效的日期格式，应为 YYYY-MM-DD")

type Week struct {
	Index int    `json:"index"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type MonthWeeks struct {
	Weeks      []Week `json:"weeks"`
	TotalWeeks int    `json:"totalWeeks"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

// WeeksOfMonth 计算给定日期所在月份的所有劳动周（周一到周日）。
// 规则：周一落在哪个月，这一周就属于哪个月，因此一个月有 4 或 5 个完整的周，
// 首尾可以越过自然月的边界。
func WeeksOfMonth(date string) (*MonthWeeks, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	startOfMonth := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)

	// 找到月初所在 ISO 周的周一
	firstMonday := startOfMonth
	for firstMonday.Weekday() != time.Monday {
		firstMonday = firstMonday.AddDate(0, 0, -1)
	}
	// 这个周一如果落在上个月，则这一周属于上个月，前进一周
	if firstMonday.Before(startOfMonth) {
		firstMonday = firstMonday.AddDate(0, 0, 7)
	}

	mw := &MonthWeeks{Weeks: []Week{}}
	for monday := firstMonday; monday.Month() == startOfMonth.Month(); monday = monday.AddDate(0, 0, 7) {
		sunday := monday.AddDate(0, 0, 6)
		mw.Weeks = append(mw.Weeks, Week{
			Index: len(mw.Weeks) + 1,
			Start: monday.Format(DateLayout),
			End:   sunday.Format(DateLayout),
		})
	}

	mw.TotalWeeks = len(mw.Weeks)
	mw.StartDate = mw.Weeks[0].Start
	mw.EndDate = mw.Weeks[mw.TotalWeeks-1].End

	return mw, nil
}

// WeeksOfMonthAt 以每月 15 号为锚点计算劳动周，避免调用方传入月初月末日期时的边界歧义
func WeeksOfMonthAt(year int, month time.Month) *MonthWeeks {
	mw, _ := WeeksOfMonth(time.Date(year, month, 15, 0, 0, 0, 0, time.UTC).Format(DateLayout))
	return mw
}

// isoWeekday 返回 ISO 星期序号：周一为 1，周日为 7
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

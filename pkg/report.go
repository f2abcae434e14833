package welearn

import (
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
)

// CourseTally counts the fetch outcomes of one course
type CourseTally struct {
	Downloaded int
	Skipped    int
	Planned    int
	Failed     int
}

// Report collects the per-course fetch outcomes of a run
type Report struct {
	courses map[string]*CourseTally
}

func NewReport() *Report {
	return &Report{courses: make(map[string]*CourseTally)}
}

func (r *Report) tally(course string) *CourseTally {
	t, ok := r.courses[course]
	if !ok {
		t = &CourseTally{}
		r.courses[course] = t
	}
	return t
}

// Add records the outcome of one fetch
func (r *Report) Add(course string, outcome Outcome) {
	t := r.tally(course)
	switch outcome {
	case Downloaded:
		t.Downloaded++
	case Planned:
		t.Planned++
	default:
		t.Skipped++
	}
}

// AddFailure records a fetch that failed
func (r *Report) AddFailure(course string) {
	r.tally(course).Failed++
}

// Course returns the tally of course
func (r *Report) Course(course string) CourseTally {
	if t, ok := r.courses[course]; ok {
		return *t
	}
	return CourseTally{}
}

// Total sums every course
func (r *Report) Total() CourseTally {
	var total CourseTally
	for _, t := range r.courses {
		total.Downloaded += t.Downloaded
		total.Skipped += t.Skipped
		total.Planned += t.Planned
		total.Failed += t.Failed
	}
	return total
}

// Empty is true when nothing was fetched or skipped
func (r *Report) Empty() bool {
	return len(r.courses) == 0
}

// Render writes the report as a table
func (r *Report) Render(w io.Writer) {
	names := make([]string, 0, len(r.courses))
	for name := range r.courses {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Course", "Downloaded", "Skipped", "Planned", "Failed"})
	for _, name := range names {
		c := r.courses[name]
		t.AppendRow(table.Row{name, c.Downloaded, c.Skipped, c.Planned, c.Failed})
	}
	total := r.Total()
	t.AppendFooter(table.Row{"Total", total.Downloaded, total.Skipped, total.Planned, total.Failed})
	t.Render()
}

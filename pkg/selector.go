package welearn

import (
	"sort"
	"strings"
	"time"
)

// AllCourses selects every configured course
const AllCourses = "ALL"

// CourseSet is a set of upper-cased course short-names
type CourseSet map[string]struct{}

func normalizeCourse(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NewCourseSet builds a set from the given course names
func NewCourseSet(names ...string) CourseSet {
	set := make(CourseSet, len(names))
	for _, name := range names {
		if n := normalizeCourse(name); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// ExpandCourses turns command line course arguments into a CourseSet. When
// any argument is ALL (in any case), the configured courses are selected
// instead.
func ExpandCourses(args []string, configured []string) CourseSet {
	for _, arg := range args {
		if normalizeCourse(arg) == AllCourses {
			return NewCourseSet(configured...)
		}
	}
	return NewCourseSet(args...)
}

// Contains compares case-insensitively
func (s CourseSet) Contains(name string) bool {
	_, ok := s[normalizeCourse(name)]
	return ok
}

// Names returns the sorted course names
func (s CourseSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FetchJob is a single file to fetch into the folder of its course
type FetchJob struct {
	Course string
	File   File
}

// SelectResources keeps the files of resources that belong to a selected
// course, flattened in the order the service returned them.
func SelectResources(courses []Course, resources []Resource, selected CourseSet) []FetchJob {
	names := make(map[int]string)
	for _, c := range courses {
		if selected.Contains(c.ShortName) {
			names[c.ID] = c.ShortName
		}
	}

	var jobs []FetchJob
	for _, res := range resources {
		name, ok := names[res.Course]
		if !ok {
			continue
		}
		for _, f := range res.ContentFiles {
			jobs = append(jobs, FetchJob{Course: name, File: f})
		}
	}
	return jobs
}

// SelectAssignments keeps the selected courses and, when dueOnly is set,
// only the assignments due after now. Courses left without assignments are
// dropped.
func SelectAssignments(courses []AssignmentCourse, selected CourseSet, dueOnly bool, now time.Time) []AssignmentCourse {
	var out []AssignmentCourse
	for _, c := range courses {
		if !selected.Contains(c.ShortName) {
			continue
		}
		kept := make([]Assignment, 0, len(c.Assignments))
		for _, a := range c.Assignments {
			if dueOnly && !a.IsDue(now) {
				continue
			}
			kept = append(kept, a)
		}
		if len(kept) == 0 {
			continue
		}
		c.Assignments = kept
		out = append(out, c)
	}
	return out
}

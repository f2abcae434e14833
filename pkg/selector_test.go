package welearn

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestExpandCourses(t *testing.T) {
	configured := []string{"MA1101", "PH2201", "CS3101"}

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{name: "explicit", args: []string{"ma1101", " PH2201 "}, expected: []string{"MA1101", "PH2201"}},
		{name: "all_upper", args: []string{"ALL"}, expected: []string{"CS3101", "MA1101", "PH2201"}},
		{name: "all_mixed_case_with_others", args: []string{"bio", "aLl"}, expected: []string{"CS3101", "MA1101", "PH2201"}},
		{name: "unconfigured_course", args: []string{"bio1101"}, expected: []string{"BIO1101"}},
		{name: "empty", args: nil, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandCourses(tt.args, configured)
			if diff := cmp.Diff(tt.expected, got.Names()); diff != "" {
				t.Errorf("unexpected courses (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCourseSetContainsIsCaseInsensitive(t *testing.T) {
	set := NewCourseSet("Ma1101")
	assert.True(t, set.Contains("MA1101"))
	assert.True(t, set.Contains("ma1101"))
	assert.False(t, set.Contains("MA1102"))
}

func TestSelectResources(t *testing.T) {
	courses := []Course{
		{ID: 1, ShortName: "MA1101"},
		{ID: 2, ShortName: "PH2201"},
		{ID: 3, ShortName: "cs3101"},
	}
	resources := []Resource{
		{Course: 1, ContentFiles: []File{
			{Filename: "a.pdf", FileURL: "https://x/a.pdf"},
			{Filename: "b.pdf", FileURL: "https://x/b.pdf"},
		}},
		{Course: 2, ContentFiles: []File{{Filename: "p.pdf", FileURL: "https://x/p.pdf"}}},
		{Course: 3, ContentFiles: []File{{Filename: "c.pdf", FileURL: "https://x/c.pdf"}}},
		{Course: 99, ContentFiles: []File{{Filename: "orphan.pdf", FileURL: "https://x/o.pdf"}}},
		{Course: 1},
	}

	got := SelectResources(courses, resources, NewCourseSet("MA1101", "CS3101"))

	expected := []FetchJob{
		{Course: "MA1101", File: File{Filename: "a.pdf", FileURL: "https://x/a.pdf"}},
		{Course: "MA1101", File: File{Filename: "b.pdf", FileURL: "https://x/b.pdf"}},
		{Course: "cs3101", File: File{Filename: "c.pdf", FileURL: "https://x/c.pdf"}},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("unexpected jobs (-want +got):\n%s", diff)
	}
}

func TestSelectAssignments(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	past := Assignment{Name: "old", DueDate: now.Add(-time.Hour).Unix()}
	future := Assignment{Name: "new", DueDate: now.Add(time.Hour).Unix()}
	exact := Assignment{Name: "now", DueDate: now.Unix()}
	undated := Assignment{Name: "undated"}

	courses := []AssignmentCourse{
		{ShortName: "MA1101", Assignments: []Assignment{past, future, exact, undated}},
		{ShortName: "PH2201", Assignments: []Assignment{past}},
		{ShortName: "CS3101", Assignments: []Assignment{future}},
	}
	selected := NewCourseSet("MA1101", "PH2201")

	t.Run("all", func(t *testing.T) {
		got := SelectAssignments(courses, selected, false, now)
		expected := []AssignmentCourse{
			{ShortName: "MA1101", Assignments: []Assignment{past, future, exact, undated}},
			{ShortName: "PH2201", Assignments: []Assignment{past}},
		}
		if diff := cmp.Diff(expected, got); diff != "" {
			t.Errorf("unexpected selection (-want +got):\n%s", diff)
		}
	})

	t.Run("due_only", func(t *testing.T) {
		got := SelectAssignments(courses, selected, true, now)
		expected := []AssignmentCourse{
			{ShortName: "MA1101", Assignments: []Assignment{future}},
		}
		if diff := cmp.Diff(expected, got); diff != "" {
			t.Errorf("unexpected selection (-want +got):\n%s", diff)
		}
	})

	assert.Len(t, courses[0].Assignments, 4, "input must not be modified")
}

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		due      time.Time
		expected Remaining
	}{
		{name: "future", due: now.Add(3*day + 5*time.Hour + 59*time.Minute), expected: Remaining{Days: 3, Hours: 5}},
		{name: "under_an_hour", due: now.Add(59 * time.Minute), expected: Remaining{}},
		{name: "past", due: now.Add(-(day + 2*time.Hour + 30*time.Minute)), expected: Remaining{Days: 1, Hours: 2, Past: true}},
		{name: "exactly_now", due: now, expected: Remaining{Past: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TimeRemaining(tt.due, now))
		})
	}

	assert.Equal(t, "3 days, 5 hours", Remaining{Days: 3, Hours: 5}.String())
}

func TestAssignmentIsDue(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	assert.True(t, Assignment{DueDate: now.Unix() + 1}.IsDue(now))
	assert.False(t, Assignment{DueDate: now.Unix()}.IsDue(now))
	assert.False(t, Assignment{DueDate: now.Unix() - 1}.IsDue(now))
	assert.False(t, Assignment{}.IsDue(now))
}

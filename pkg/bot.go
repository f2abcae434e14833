package welearn

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const attachmentIndent = 8

type Options struct {
	// OutputPath is the folder the course folders are created in
	OutputPath string
	// Assignments lists assignments and fetches their attachments instead of resources
	Assignments bool
	// DueOnly restricts the assignment listing to assignments due in the future
	DueOnly bool
	Force   bool
	DryRun  bool
	// KeepGoing logs failed downloads and continues with the next file
	KeepGoing bool
}

// Bot fetches the files of the selected courses
type Bot struct {
	API     API
	Cache   *LinkCache
	Courses CourseSet
	Options

	Out      io.Writer
	Now      func() time.Time
	Location *time.Location
}

func New(api API, cache *LinkCache, courses CourseSet, opts Options) *Bot {
	return &Bot{
		API:      api,
		Cache:    cache,
		Courses:  courses,
		Options:  opts,
		Out:      os.Stdout,
		Now:      time.Now,
		Location: time.Local,
	}
}

// Run loads the link cache, fetches resources or assignments and writes the
// cache back. The cache is written even when the run fails, so files that
// were downloaded before the failure are not fetched again.
func (b *Bot) Run(ctx context.Context) (report *Report, err error) {
	if err := b.Cache.Load(); err != nil {
		return nil, err
	}
	logrus.Debugf("loaded %d cached links from %s", b.Cache.Len(), b.Cache.Path())

	if !b.DryRun {
		defer func() {
			if saveErr := b.Cache.Save(); saveErr != nil {
				if err == nil {
					err = saveErr
					return
				}
				logrus.Errorf("unable to save link cache: %v", saveErr)
			}
		}()
	}

	if b.Assignments {
		return b.RunAssignments(ctx)
	}
	return b.RunResources(ctx)
}

// RunResources downloads the resource files of the selected courses
func (b *Bot) RunResources(ctx context.Context) (*Report, error) {
	courses, err := b.API.Courses(ctx)
	if err != nil {
		return nil, err
	}
	resources, err := b.API.Resources(ctx)
	if err != nil {
		return nil, err
	}

	jobs := SelectResources(courses, resources, b.Courses)
	logrus.Infof("found %d files in %d selected courses", len(jobs), len(b.Courses))

	report := NewReport()
	fetcher := b.fetcher()
	for _, job := range jobs {
		if err := b.fetch(ctx, fetcher, report, job.Course, job.File, 0); err != nil {
			return report, err
		}
	}
	return report, nil
}

// RunAssignments prints the assignments of the selected courses and
// downloads their attachments
func (b *Bot) RunAssignments(ctx context.Context) (*Report, error) {
	all, err := b.API.Assignments(ctx)
	if err != nil {
		return nil, err
	}

	now := b.now()
	report := NewReport()
	fetcher := b.fetcher()
	out := b.out()

	for _, course := range SelectAssignments(all, b.Courses, b.DueOnly, now) {
		_, _ = fmt.Fprintln(out, course.ShortName)
		dir := b.courseDir(course.ShortName)
		for _, a := range course.Assignments {
			b.printAssignment(out, a, now)
			for _, att := range a.IntroAttachments {
				_, _ = fmt.Fprintf(out, "        Attachment: %s\n", filepath.Join(dir, att.Filename))
				if err := b.fetch(ctx, fetcher, report, course.ShortName, att, attachmentIndent); err != nil {
					return report, err
				}
			}
			_, _ = fmt.Fprintln(out)
		}
	}
	return report, nil
}

func (b *Bot) printAssignment(out io.Writer, a Assignment, now time.Time) {
	_, _ = fmt.Fprintf(out, "    %s - %s\n", a.Name, HTMLText(a.Intro))

	due, ok := a.Due()
	if !ok {
		_, _ = fmt.Fprintln(out, "        Due on: no due date")
		return
	}
	dueStr := due.In(b.location()).Format(DueDateLayout)
	remaining := TimeRemaining(due, now)
	if remaining.Past {
		_, _ = fmt.Fprintf(out, "        Due on: %s (%s ago)\n", dueStr, remaining)
		return
	}
	_, _ = fmt.Fprintf(out, "        Due on: %s\n", dueStr)
	_, _ = fmt.Fprintf(out, "        Time remaining : %s\n", remaining)
}

func (b *Bot) fetch(ctx context.Context, fetcher *Fetcher, report *Report, course string, file File, indent int) error {
	outcome, err := fetcher.Fetch(ctx, file, b.courseDir(course), indent)
	if err != nil {
		report.AddFailure(course)
		if b.KeepGoing && ctx.Err() == nil && KindOf(err) != KindAuth {
			logrus.Warnf("unable to fetch %s: %v", file.FileURL, err)
			return nil
		}
		return err
	}
	report.Add(course, outcome)
	return nil
}

func (b *Bot) fetcher() *Fetcher {
	return &Fetcher{
		Downloader: b.API,
		Cache:      b.Cache,
		Force:      b.Force,
		DryRun:     b.DryRun,
		Progress:   b.out(),
	}
}

func (b *Bot) courseDir(course string) string {
	root := b.OutputPath
	if root == "" {
		root = "."
	}
	return filepath.Join(root, course)
}

func (b *Bot) out() io.Writer {
	if b.Out == nil {
		return io.Discard
	}
	return b.Out
}

func (b *Bot) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func (b *Bot) location() *time.Location {
	if b.Location == nil {
		return time.Local
	}
	return b.Location
}

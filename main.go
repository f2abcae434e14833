package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	welearn "github.com/denysvitali/welearn-bot/pkg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	Courses        []string
	ListCourses    bool
	Assignments    bool
	DueAssignments bool
	ForceDownload  bool
	DryRun         bool
	KeepGoing      bool
	Verbose        bool
	Output         string
	CachePath      string
	ConfigPath     string
	ServerURL      string
	HTTPTimeout    time.Duration
}

func newRootCommand() (*cobra.Command, *options) {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "welearn-bot [courses...]",
		Short:         "A bot which can batch download files from WeLearn.",
		Long:          "A bot which can batch download files from WeLearn.\n\nCourses are given by their short names. The word ALL selects all configured courses.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Courses = args
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.ListCourses, "listcourses", "l", false, "display configured courses (ALL) and exit")
	flags.BoolVarP(&opts.Assignments, "assignments", "a", false, "show all assignments in given courses, download attachments and exit")
	flags.BoolVarP(&opts.DueAssignments, "dueassignments", "d", false, "show only due assignments, if -a was selected")
	flags.BoolVarP(&opts.ForceDownload, "forcedownload", "f", false, "force download files even if already downloaded")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "show what would be downloaded without downloading")
	flags.BoolVarP(&opts.KeepGoing, "keep-going", "k", false, "continue with the next file when a download fails")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVarP(&opts.Output, "output", "o", "", "directory the course folders are created in (default \".\")")
	flags.StringVar(&opts.CachePath, "cache", "", "link cache file (default \""+welearn.DefaultCachePath+"\")")
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default \"~/"+welearn.DefaultConfigName+"\")")
	flags.StringVar(&opts.ServerURL, "server", "", "WeLearn base URL (default \""+welearn.DefaultBaseURL+"\")")
	flags.DurationVar(&opts.HTTPTimeout, "http-timeout", 0, "timeout of each HTTP request, 0 disables it")

	return cmd, opts
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if len(opts.Courses) == 0 && !opts.ListCourses {
		_, _ = fmt.Fprintln(out, "No course names selected. Use the -h flag for usage.")
		return nil
	}
	if opts.HTTPTimeout < 0 {
		return fmt.Errorf("invalid value for --http-timeout: %v", opts.HTTPTimeout)
	}
	if opts.DueAssignments && !opts.Assignments {
		logrus.Warn("--dueassignments has no effect without --assignments")
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		var err error
		configPath, err = welearn.DefaultConfigPath()
		if err != nil {
			return err
		}
	}
	cfg, err := welearn.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if opts.ListCourses {
		for _, course := range cfg.Courses {
			_, _ = fmt.Fprintln(out, course)
		}
		return nil
	}

	err = cfg.ApplySettings(welearn.Settings{
		ServerURL: opts.ServerURL,
		CachePath: opts.CachePath,
		OutputDir: opts.Output,
	})
	if err != nil {
		return err
	}

	courses := welearn.ExpandCourses(opts.Courses, cfg.Courses)
	logrus.Debugf("selected courses: %v", courses.Names())

	client := welearn.NewClient(welearn.ClientOptions{
		BaseURL: cfg.Settings.ServerURL,
		Timeout: opts.HTTPTimeout,
	})
	if err := client.Login(ctx, cfg.Credentials); err != nil {
		return err
	}

	bot := welearn.New(client, welearn.NewLinkCache(cfg.Settings.CachePath), courses, welearn.Options{
		OutputPath:  cfg.Settings.OutputDir,
		Assignments: opts.Assignments,
		DueOnly:     opts.DueAssignments,
		Force:       opts.ForceDownload,
		DryRun:      opts.DryRun,
		KeepGoing:   opts.KeepGoing,
	})
	bot.Out = out

	report, err := bot.Run(ctx)
	if report != nil && !opts.Assignments {
		total := report.Total()
		if total.Downloaded+total.Planned+total.Failed > 0 {
			report.Render(out)
		} else {
			logrus.Info("nothing new to download")
		}
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, _ := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

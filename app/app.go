// Package app wires the worklog command-line interface.
package app

import (
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"worklog/internal/config"
	"worklog/internal/logutil"
)

const (
	envNoColor        = "NO_COLOR"
	envWorklogNoColor = "WORKLOG_NO_COLOR"
)

// conf is loaded once in beforeAction and shared by all actions.
var conf *config.Config

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the worklog app instance.
func Get() *cli.App {
	worklogApp := &cli.App{
		Name: "wl",
		Usage: `
		Worklog is a simple command-line tool to track working time. Clock in
		and out of work sessions, track tasks within them, and derive status,
		consistency and aggregation reports from the resulting log.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:  "session",
				Usage: "Start or stop a work session",
				Subcommands: []*cli.Command{
					{
						Name:   "start",
						Usage:  "Start a new work session",
						Flags:  []cli.Flag{offsetMinutesFlag, timeFlag, forceFlag},
						Action: sessionStartAction,
					},
					{
						Name:   "stop",
						Usage:  "Stop the current work session",
						Flags:  []cli.Flag{offsetMinutesFlag, timeFlag, forceFlag},
						Action: sessionStopAction,
					},
				},
			},
			{
				Name:  "task",
				Usage: "Track, list and report tasks within a session",
				Subcommands: []*cli.Command{
					{
						Name:   "start",
						Usage:  "Start working on a task",
						Flags:  []cli.Flag{taskIDFlag, autoStopFlag, offsetMinutesFlag, timeFlag},
						Action: taskStartAction,
					},
					{
						Name:   "stop",
						Usage:  "Stop working on a task",
						Flags:  []cli.Flag{taskIDFlag, offsetMinutesFlag, timeFlag},
						Action: taskStopAction,
					},
					{
						Name:   "list",
						Usage:  "List all tasks in the log",
						Action: taskListAction,
					},
					{
						Name:   "report",
						Usage:  "Report the tracked intervals of one task",
						Flags:  []cli.Flag{taskIDFlag},
						Action: taskReportAction,
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Show tracking status, elapsed and remaining time for a day",
				Flags:  []cli.Flag{yesterdayFlag, dateFlag, fmtFlag},
				Action: statusAction,
			},
			{
				Name:   "doctor",
				Usage:  "Check the log for inconsistent session and task entries",
				Action: doctorAction,
			},
			{
				Name:   "log",
				Usage:  "Show the most recent log entries",
				Flags:  []cli.Flag{numberFlag, allFlag, categoryFlag, noPagerFlag},
				Action: logAction,
			},
			{
				Name:   "report",
				Usage:  "Aggregate session and task time over a date window",
				Flags:  []cli.Flag{dateFromFlag, dateToFlag},
				Action: reportAction,
			},
		},
		Flags:  []cli.Flag{verboseFlag, noColorFlag},
		Before: beforeAction,
	}

	return worklogApp
}

func beforeAction(ctx *cli.Context) error {
	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envWorklogNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	logger := logutil.Init(config.LogFilePath(), ctx.Bool("verbose"))

	var err error

	conf, err = config.New(
		config.WithViperConfig(config.ConfigFilePath()),
	)
	if err != nil {
		return err
	}

	logger.Debug("loaded configuration", slog.String("dump", spew.Sdump(conf)))

	return nil
}

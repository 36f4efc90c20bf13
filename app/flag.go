package app

import "github.com/urfave/cli/v2"

var (
	offsetMinutesFlag = &cli.IntFlag{
		Name:    "offset-minutes",
		Aliases: []string{"om"},
		Usage: "Offset of the start/stop time in minutes. Positive values shift the timestamp into the future,\n\t\t\t\tnegative values shift it into the past",
	}

	timeFlag = &cli.StringFlag{
		Name: "time",
		Usage: "Exact point in time. Either hours and minutes ('hh:mm') on the same day or a full ISO format\n\t\t\t\tstring such as '2020-08-05T08:15:00+02:00'. The local timezone is used if no timezone is given",
	}

	forceFlag = &cli.BoolFlag{
		Name:    "force",
		Aliases: []string{"f"},
		Usage:   "Force command, will auto-stop running tasks",
	}

	taskIDFlag = &cli.StringFlag{
		Name:  "id",
		Usage: "Task identifier, can be freely chosen",
	}

	autoStopFlag = &cli.BoolFlag{
		Name:    "auto-stop",
		Aliases: []string{"as"},
		Usage:   "Automatically stop all running tasks first",
	}

	yesterdayFlag = &cli.BoolFlag{
		Name:  "yesterday",
		Usage: "Show the status of yesterday instead of today",
	}

	dateFlag = &cli.StringFlag{
		Name:  "date",
		Usage: "Show the status of a specific day (format: YYYY-MM-DD)",
	}

	fmtFlag = &cli.StringFlag{
		Name:  "fmt",
		Usage: "Use a custom format string with {placeholder} fields",
	}

	numberFlag = &cli.IntFlag{
		Name:    "number",
		Aliases: []string{"n"},
		Value:   10,
		Usage:   "The number of log entries to show",
	}

	allFlag = &cli.BoolFlag{
		Name:    "all",
		Aliases: []string{"a"},
		Usage:   "Show all log entries",
	}

	categoryFlag = &cli.StringFlag{
		Name:  "category",
		Usage: "Only show entries of one category (session or task)",
	}

	noPagerFlag = &cli.BoolFlag{
		Name:  "no-pager",
		Usage: "Print to stdout regardless of how many entries are shown",
	}

	dateFromFlag = &cli.StringFlag{
		Name:  "date-from",
		Usage: "Start of the report window, inclusive (YYYY-MM, YYYY-MM-DD or YYYY-Www). Defaults to the current month",
	}

	dateToFlag = &cli.StringFlag{
		Name:  "date-to",
		Usage: "End of the report window, exclusive (YYYY-MM, YYYY-MM-DD or YYYY-Www). Defaults to the next month",
	}

	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Enable debug logging",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}
)

package cli

import "io"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to YAML config file"`
	EnvFile string `long:"env-file" description:"Path to .env file (ignored when missing)" default:".env"`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable debug logging"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// RunCommand searches for events and records a price snapshot for the first hit.
type RunCommand struct {
	Keyword string `long:"keyword" description:"Search keyword" default:"concert"`
	City    string `long:"city" description:"Limit the search to a city" default:"Toronto"`
	Recent  int    `long:"recent" description:"Number of recent snapshots to show" default:"5"`

	globals *GlobalFlags
	version string
	out     io.Writer
}

// StatusCommand shows database statistics and active events.
type StatusCommand struct {
	globals *GlobalFlags
	version string
	out     io.Writer
}

// HistoryCommand shows recent snapshots for one event.
type HistoryCommand struct {
	Event string `long:"event" description:"Ticketmaster event id (required)"`
	Limit int    `long:"limit" description:"Maximum snapshots" default:"10"`

	globals *GlobalFlags
	version string
	out     io.Writer
}

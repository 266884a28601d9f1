package commands

// Command identifiers understood by the CLI.
const (
	CmdLs      = "ls"
	CmdHelp    = "help"
	CmdVersion = "version"
)

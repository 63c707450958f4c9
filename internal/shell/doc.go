// Package shell implements the interactive terminal front-end.
//
// The shell is a line-oriented loop over an input stream. Each line is one
// command, executed synchronously against a session.Session:
//
//	open <path>      select a file (the terminal counterpart of a file dialog)
//	lang [name]      show or change the recognition language
//	languages        list the language table, marking the current entry
//	convert          convert the selected file
//	status           print selection, target, language and last status
//	help             list commands
//	quit             exit
//
// After every file selection or conversion the shell prints the session
// status, colored by kind when color output is enabled.
package shell

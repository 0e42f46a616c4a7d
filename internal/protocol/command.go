package protocol

import "strings"

// Command enumerates the verbs this server recognizes (spec.md §3, §4.2).
type Command int

const (
	Ping Command = iota
	Echo
	Get
	Set
	Info
	ReplConf
	PSync
)

var commandNames = map[string]Command{
	"ping":     Ping,
	"echo":     Echo,
	"get":      Get,
	"set":      Set,
	"info":     Info,
	"replconf": ReplConf,
	"psync":    PSync,
}

func (c Command) String() string {
	for name, cmd := range commandNames {
		if cmd == c {
			return name
		}
	}
	return "unknown"
}

// UnknownCommandError carries the verb text that wasn't recognized.
type UnknownCommandError struct {
	Verb string
}

func (e *UnknownCommandError) Error() string {
	return "unknown command '" + e.Verb + "'"
}

// LookupCommand maps a verb (case-insensitive) to a Command.
func LookupCommand(verb string) (Command, error) {
	cmd, ok := commandNames[strings.ToLower(verb)]
	if !ok {
		return 0, &UnknownCommandError{Verb: verb}
	}
	return cmd, nil
}

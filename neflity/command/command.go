// Package command holds the reference table of chat commands.
package command

// Command is one chat command available on the server.
type Command struct {
	Name        string
	Args        string
	Description string
}

// Usage returns the command as typed in chat, e.g. "!play <url>".
func (c Command) Usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

// commands ...
var commands = []Command{
	{Name: "!help", Description: "Show help menu"},
	{Name: "!play", Args: "<url>", Description: "Play music"},
	{Name: "!ban", Args: "<user>", Description: "Ban a user"},
	{Name: "!kick", Args: "<user>", Description: "Kick a user"},
	{Name: "!stats", Description: "Show stats"},
}

// All returns every command in display order. The slice is a copy.
func All() []Command {
	out := make([]Command, len(commands))
	copy(out, commands)
	return out
}

// Command khelm assigns timetable layers by layer matching.
package main

import "github.com/katalvlaran/khelm/cmd/khelm/commands"

func main() {
	commands.Execute()
}

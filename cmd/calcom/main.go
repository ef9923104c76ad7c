package main

import (
	_ "time/tzdata"

	"github.com/theakshaypant/calcom/cmd/calcom/cmd"
)

func main() {
	cmd.Execute()
}

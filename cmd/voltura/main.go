package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/autopeer-io/voltura/cmd/voltura/app"
)

func main() {
	app.NewApp().Run()
}

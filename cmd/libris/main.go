package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

func main() {
	app := &AppContext{}
	defer app.Close()

	root := newRootCmd(app)
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		app.Close()
		os.Exit(1)
	}
}

package main

import (
	"github.com/taskhub/task-manager-api/app"
	_ "github.com/taskhub/task-manager-api/docs"
)

// @title Task Manager API
// @version 1.0
// @description Session-authenticated personal task tracking API.
// @BasePath /
func main() {
	// setup and run app
	err := app.SetupAndRunApp()
	if err != nil {
		panic(err)
	}
}

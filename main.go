package main

import (
	"github.com/taskmanager/app/cmd"
)

// Version information set at build time.
var version = "dev"

// @title Task Manager API
// @version 1.0
// @description Multi-user task tracker with token authentication and password recovery.

// @host  localhost:5000
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cmd.Execute(version)
}

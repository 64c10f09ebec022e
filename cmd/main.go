package main

import (
	"github.com/corray333/tutti-amici/internal/app"
	"github.com/corray333/tutti-amici/internal/config"
)

// @title			Tutti Amici API
// @version		1.0
// @description	Menu and order management for the Tutti Amici restaurant.
// @BasePath		/
func main() {
	config.MustInit()
	app.MustNewApp().Run()
}

//go:build tinygo && baremetal

package main

import (
	"boxdemo/app"
	"boxdemo/hal"
)

func main() {
	app.Run(hal.New(hal.Options{}), app.Config{HUD: true})
}

package main

import (
	"fxconvert/internal/app"

	"github.com/sirupsen/logrus"
)

//	@title			FX Convert API
//	@version		1.0
//	@description	Currency conversion service with multi-provider rate aggregation.

//	@BasePath	/api/v1

func main() {
	if err := app.Run(); err != nil {
		logrus.Fatalf("Application stopped with error: %v", err)
	}
}

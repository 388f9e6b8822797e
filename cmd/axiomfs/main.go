package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Match builds the CLI and ranks listings for the résumé named by $CV.
// $KEYWORDS and $FORMAT are passed through when set.
func Match() error {
	mg.Deps(Build)

	cv := os.Getenv("CV")
	if cv == "" {
		return fmt.Errorf("set CV to the path of a résumé, e.g. CV=cv.pdf mage match")
	}
	args := []string{"match", "--cv", cv}
	if k := os.Getenv("KEYWORDS"); k != "" {
		args = append(args, "--keywords", k)
	}
	if f := os.Getenv("FORMAT"); f != "" {
		args = append(args, "--format", f)
	}
	return sh.RunV("./"+binDir+"/"+binName, args...)
}

// Sources builds the CLI and lists the configured sources.
func Sources() error {
	mg.Deps(Build)
	return sh.RunV("./"+binDir+"/"+binName, "sources")
}

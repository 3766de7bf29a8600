//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the facet binary into bin/.
func (Build) Facet() error {
	mg.Deps(Tidy)
	_, err := executeCmd("go", withArgs("build", "-o", "bin/facet", "./cmd/facet"), withEnv("CGO_ENABLED=0"), withStream())
	return err
}

// Runs go mod tidy.
func Tidy() error {
	_, err := executeCmd("go", withArgs("mod", "tidy"))
	return err
}

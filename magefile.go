//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "lingopop"
	mainPath   = "./cmd/lingopop"
)

// Default target to run when none is specified
var Default = Build

// Build compiles the lingopop binary
func Build() error {
	fmt.Println("Building", binaryName)
	return sh.RunV("go", "build", "-o", binaryName, mainPath)
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install runs go install for the binary after a successful build
func Install() error {
	mg.Deps(Build)
	return sh.RunV("go", "install", mainPath)
}

// Clean removes build artifacts
func Clean() error {
	return os.RemoveAll(binaryName)
}

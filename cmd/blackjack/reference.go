package main

import (
	"fmt"

	"github.com/joelfrenette/card-counting-coach-com/internal/display"
)

// SystemsCmd prints the counting system reference table
type SystemsCmd struct{}

func (c *SystemsCmd) Run(cli *CLI) error {
	fmt.Print(display.NewRenderer().Systems())
	return nil
}

// StylesCmd prints the betting style reference table
type StylesCmd struct{}

func (c *StylesCmd) Run(cli *CLI) error {
	fmt.Print(display.NewRenderer().Styles())
	return nil
}

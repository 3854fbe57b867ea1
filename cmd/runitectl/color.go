package main

import "github.com/fatih/color"

var (
	errColor  = color.New(color.FgRed, color.Bold).SprintFunc()
	okColor   = color.New(color.FgGreen).SprintFunc()
	infoColor = color.New(color.FgCyan).SprintFunc()
)

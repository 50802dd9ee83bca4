/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/streamlex/live-translator/cmd"

func main() {
	cmd.Execute()
}

// Package main provides the apmlc CLI, which compiles APML documents into Vue applications.
package main

func main() {
	Execute()
}

// Package main is the entry point for the scour CLI.
//
// scour destroys file content before deletion: it overwrites target
// bytes with the pattern passes of a named sanitization standard, then
// unlinks. Directory trees are sanitized recursively through the same
// standards.
package main

func main() {
	Execute()
}

// Command mdfence is a markdown editor that switches highlighting and
// completion between prose and fenced code, plus batch tools for inspecting
// fences and completions.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main provides the executable logic for trelnex-auth.
package main

import "github.com/StevenKehrli/Trelnex-sub007/cmd"

func main() {
	cmd.Execute()
}

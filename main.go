// SPDX-License-Identifier: MPL-2.0

// Command addonpack bumps the version fields of game addon manifests.
package main

import cmd "github.com/addonpack/addonpack/cmd/addonpack"

func main() {
	cmd.Execute()
}

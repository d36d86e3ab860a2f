// Command nasdeck organizes NAS resources into user-defined folder views.
package main

import "github.com/nasdeck/nasdeck/pkg/cli"

func main() {
	cli.Execute()
}

// policygate: constitution gate for autonomous agent tasks.
package main

import "github.com/ppiankov/policygate/internal/cli"

func main() {
	cli.Execute()
}

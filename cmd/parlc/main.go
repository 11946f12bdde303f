// Command parlc is the PArL compiler's CLI driver.
package main

import "github.com/parl-lang/parlc/cmd/parlc/cmd"

func main() {
	cmd.Execute()
}

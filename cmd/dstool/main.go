// SPDX-License-Identifier: MIT

// Command dstool enumerates, inspects and plots design spaces of GMA models
// and serves them over HTTP.
//
//	dstool cases model.yaml --slice "b=0.01:100, c=1"
//	dstool case model.yaml 1 --log
//	dstool steady-state model.yaml 1 --at a=1,b=2,c=10
//	dstool plot model.yaml -o slice.png
//	dstool serve --addr :8080 --data ./data
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

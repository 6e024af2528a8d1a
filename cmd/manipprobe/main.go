// Command manipprobe loads a scene and reports what a click in its viewport
// would hit with a given manipulator, optionally dragging to a second point.
package main

import (
	"os"

	"github.com/gekko3d/manip/logging"
)

func main() {
	log := logging.NewDefaultLogger("manipprobe", false)
	if err := newRootCmd(log).Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

package mylang

import "github.com/juju/loggo"

// newDispatchLogger builds the loggo.Logger used to optionally trace
// message dispatch, mirroring iolang's VM.Debug flag and debugger.go: a
// single toggle that, when off, imposes no observable cost beyond a level
// check, and when on, traces every message send.
func newDispatchLogger(debug bool) loggo.Logger {
	log := loggo.GetLogger("mylang.eval")
	if debug {
		log.SetLogLevel(loggo.TRACE)
	} else {
		log.SetLogLevel(loggo.WARNING)
	}
	return log
}

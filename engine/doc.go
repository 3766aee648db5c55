/*
Package engine implements the CDS descriptor-processing engines.

Progress of a CDS parse is expressed through four actions — match, descend,
skip and ascend — over a worklist of descriptors. Engines repeatedly admit a
descriptor from the worklist into the descriptor set and run the actions on
it, emitting new descriptors and extended packed nodes, until the worklist
drains. Three engines share this contract:

■ Sequential: a single-worker loop. It is the reference semantics; every
other engine returns the same descriptor and EPN sets, as pure sets.

■ Pool: a coordinator and a fixed number of workers. Workers pull from
per-worker queues, the coordinator redistributes newly staged work
round-robin.

■ Tree: workers spawn children when their local worklist reaches a
threshold, passing a snapshot of the descriptors seen so far; admission is
arbitrated through a global descriptor set.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cds.engine'.
func tracer() tracing.Trace {
	return tracing.Select("cds.engine")
}

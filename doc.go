/*
Package cds is a generalized context-free recognizer based on descriptor
processing.

CDS ("Clustered Derivation Sets") represents the state of a parse as a set of
descriptors, i.e. dotted grammar slots tagged with input extents, and
represents derivations as a set of extended packed nodes (EPNs), the edges of
a shared packed parse forest. Arbitrary context-free grammars are supported,
including left-recursive and ambiguous ones. Package structure is as follows:

■ cfg: Package cfg implements context-free grammars, a grammar builder and
readers for a simple line-oriented grammar format.

■ engine: Package engine implements the descriptor-processing engines, i.e.
the four CDS actions together with a sequential reference engine and two
parallel engines (a coordinator/worker pool and a tree of spawning workers).

■ check: Package check validates engine output against the CDS closure
requirements.

The base package contains the data types which are used throughout all the
other packages: symbols, descriptors, EPNs, and hash-based sets of both.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cds

package main

import (
	"encoding/json"
	"os"

	"github.com/ByLCY/typeset/linebreak"
	"github.com/ByLCY/typeset/node"
)

// debugDump is the -debug flag's JSON shape: the finished box tree
// plus the chosen breakpoint chain, serialized for inspection.
type debugDump struct {
	VList       []node.Node       `json:"vlist"`
	Breakpoints []debugBreakpoint `json:"breakpoints,omitempty"`
}

type debugBreakpoint struct {
	Position int    `json:"position"`
	Line     int    `json:"line"`
	Fitness  string `json:"fitness"`
	Demerits int64  `json:"demerits"`
}

// writeDebugJSON marshals the vlist and breakpoint chain as indented
// JSON for inspection.
func writeDebugJSON(vlist []node.Node, chain []*linebreak.Breakpoint, path string) error {
	dump := debugDump{VList: vlist}
	for _, bp := range chain {
		if bp == nil {
			continue
		}
		dump.Breakpoints = append(dump.Breakpoints, debugBreakpoint{
			Position: bp.Position,
			Line:     bp.Line,
			Fitness:  bp.Fitness.String(),
			Demerits: bp.Demerits,
		})
	}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

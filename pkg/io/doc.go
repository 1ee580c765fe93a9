// Package io provides JSON export for dependency graphs.
//
// # Overview
//
// [WriteJSON] is the machine-readable counterpart of the DOT output, for
// tools that would rather not parse Graphviz. It carries the same nodes and
// edges in the same order.
//
// # JSON Format
//
//	{
//	  "root": 0,
//	  "label": "name",
//	  "nodes": [
//	    {"index": 0, "name": "app", "version": "0.1.0", "source": "path+file:///src/app", "label": "app"},
//	    {"index": 1, "name": "lib-a", "version": "1.0.0", "source": "registry+https://...", "label": "lib-a"}
//	  ],
//	  "edges": [
//	    {"from": 0, "to": 1}
//	  ]
//	}
//
// Edge endpoints are node indices. "label" names the label mode and each
// node's "label" holds the text the DOT output would show.
package io

// Package io reads and writes the JSON documents lodviz consumes and
// produces.
//
// # Tables
//
// A table is an object with a "rows" array, or a bare array of row
// objects. Plain JSON values become field values; timestamps are tagged:
//
//	{"rows": [
//	  {"ts": {"type": "timestamp", "value": 1700000000}, "host": "a", "cpu": 0.4},
//	  {"ts": "2023-11-14T22:13:21Z", "host": "b", "cpu": null}
//	]}
//
// RFC 3339 strings stay text until the pipeline parses the columns encoded
// as temporal.
//
// # Datasets
//
// A dataset lists named series. Points are [x, y] pairs or {"x", "y"}
// objects; "visible" defaults to true:
//
//	{"series": [{"name": "cpu", "data": [[0, 1.5], {"x": 1, "y": 2}]}]}
//
// [WriteDataset] always writes pairs.
//
// # Values
//
// A value list for statistics is a bare number array or {"values": [...]}.
//
// # Results
//
// [WriteJSON] and [ExportJSON] encode any result document with two-space
// indentation.
package io

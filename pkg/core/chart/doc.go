// Package chart describes a chart declaratively: its data, mark,
// encoding channels and layout configuration.
//
// A [Spec] is built with a [Builder] and checked once in [Builder.Build]:
// data, mark and the x field are required.
//
//	spec, err := chart.NewBuilder().
//	    Table(tbl).
//	    Mark(data.MarkLine).
//	    X(table.Temporal("date")).
//	    Y(table.Quantitative("amount")).
//	    Color(table.Nominal("product")).
//	    Title("Sales").
//	    Build()
//
// [Spec.ResolveDataset] and [Spec.ResolveBarDataset] turn whichever data
// the Spec carries into the concrete dataset a mark needs, converting a
// table through the Spec's encoding.
package chart

// Package analysis characterises sort traces.
//
//   - [Inversions]: number of out-of-order pairs in a snapshot
//   - [InversionSeries]: remaining disorder after every step, for plotting
//   - [Summarize]: step counts by kind plus the metrics of one run
//
// A trace that ends sorted always ends with zero inversions:
//
//	series := analysis.InversionSeries(tr)
//	fmt.Println(asciigraph.Plot(series))
package analysis

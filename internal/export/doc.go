// Package export renders solved cable runs for people and other tools:
// a plain-text report, a CSV table with optional verification columns and
// a PNG figure drawn with gonum/plot.
package export

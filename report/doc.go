// Package report renders analysis outcomes.
//
// Three renderers are provided:
//   - WriteSummary: a fixed-width text table of the quartiles and outliers of
//     every round, per orientation
//   - WriteArchive / ReadArchive: a JSON record of the whole outcome,
//     optionally block-compressed with one of the compress codecs
//   - PlotRounds / RenderRound: PNG scatter plots of each round with the
//     fitted line and the round's outliers highlighted
package report

// Package iqr classifies residuals as outliers with interquartile-range fences.
//
// Quartiles use linear interpolation between order statistics: for a sorted
// sample of n values the p-th quantile sits at position p·(n−1), and a
// fractional position interpolates between the two bracketing values. This is
// the method of spreadsheet QUARTILE functions and numpy's default
// percentile, so values computed here match results produced in those tools.
//
// A value is an outlier when it lies strictly outside the fences
//
//	lower = Q1 − 1.5·IQR
//	upper = Q3 + 1.5·IQR
//
// Values exactly on a fence are inliers.
package iqr

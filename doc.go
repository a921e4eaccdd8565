// Package revrec computes monthly recognized revenue from subscription
// payment facts, per accrual accounting.
//
// A payment is allocated to the calendar months it covers: monthly
// payments are prorated over their starting month with the remainder
// carried into the following months, and annual payments are expanded
// into exactly twelve monthly rows whose last row absorbs the rounding
// remainder. The aggregated report groups recognized amounts by
// (month, zip) for one jurisdiction and target year.
//
// All arithmetic is exact decimal; rounding happens only at aggregation.
package revrec

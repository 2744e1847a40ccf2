// Package glreport rebuilds a transaction ledger from the fixed-width text of
// a yearly General Ledger report, and proves it by reconciling it against the
// totals the report prints.
//
// The report never states whether an entry is a debit or a credit. The sign
// is read from where the amount is printed, and when stray text pushed the
// amount out of place the sign is only inferred. Reconciliation then works at
// three levels:
//   - Monthly: the transactions of each account month must add up to the
//     printed "Totals for <Month>" line.
//   - Account: the printed monthly totals must add up to the balance printed
//     on the "Balance Forward" line.
//   - Report: the printed balances of all accounts must add up to the
//     "Totals for Report" line.
//
// Account months that fail are searched: every sign assignment of their
// ambiguous transactions is tried until one reproduces the printed totals.
//
// Process runs the whole pipeline. The result can be saved with EncodeLedger,
// read back with DecodeLedger, and exported as CSV sheets with WriteSheets.
//
// This package serves as the foundational logic for the `glr` command-line
// tool.
package glreport

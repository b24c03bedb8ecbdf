// Package billing provides the invoicing domain model.
//
// An Invoice aggregates booking details, line items and payment state.
// All money flows through integer paise; line items derive their
// amounts from quantity, rate and per-item discount, and invoice totals
// split tax into equal CGST and SGST halves. Invoices move through a
// DRAFT -> ISSUED -> PAID lifecycle, with CANCELLED reachable from any
// state before payment completes.
package billing

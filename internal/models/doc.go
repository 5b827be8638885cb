// Package models defines the core domain models for the library.
//
// # Entities
//
//   - Person: an identity keyed by email, used as author and as the basis of a Member
//   - Member: a Person registered to borrow, with a fixed Status
//   - Document: anything with an ISBN; Book is the only concrete document
//   - Equipment: anything with a registry-assigned id; Laptop is the only concrete equipment
//
// # Lending
//
// Documents and equipment are Lendable. Each one embeds a Loanable which
// holds its loan state and enforces the two transitions:
//
//	Available --Borrow--> OnLoan(member, since) --Return--> Available
//
// An item is on loan to at most one member at a time. An illegal transition
// fails with a NotLendable error and leaves the state untouched.
//
// # Changes
//
// Change is the (type, domain) value published after every successful
// mutation of a library. Changes are never stored.
//
// # Errors
//
// Every failure of the core is an *Error carrying an ErrorKind. Callers match
// with errors.Is against the Err* sentinels or switch on KindOf(err).
package models

// Package models defines the core domain models for Librarian.
//
// # Models
//
//   - Book: a title on the shelf, with an availability flag
//   - User: a borrower (students and staff)
//   - Admin: a library administrator account
//   - Loan: one book lent to one user until a due date
//
// # Design Principles
//
// 1. **Integer IDs**: records are identified by store-assigned int64 IDs, so a
// scanned book code is simply the book's decimal ID
// 2. **No pointers between records**: relationships are expressed with IDs
// 3. **Derived state stays derived**: overdue status is computed on read and
// never persisted
package models

// Package verify audits the invariants of a heap built by heap/alloc. The
// checks are meant for frequent invocation by tests and the script harness,
// not for production hot paths: every check walks the whole segment, and the
// free-list membership check is quadratic in the number of blocks.
//
// The audited invariants:
//
//   - Conservation: the header and payload sizes of all blocks in address
//     order sum exactly to the segment size.
//   - Free list: the head has no predecessor, and every node reachable from
//     the head is marked free.
//   - Membership: every block marked free in the address-order walk is
//     reachable from the free-list head.
//
// Violations are reported as *ValidationError with a diagnostic naming the
// first violated invariant and the offending offset. Setting the
// HEAPKIT_BREAK_ON_VIOLATION environment variable stops in the debugger at
// the point of detection, as a development aid. Validation never repairs
// state.
package verify

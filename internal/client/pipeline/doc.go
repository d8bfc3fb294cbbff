// Package pipeline implements the asynchronous actions of the blog client:
// registration and login, post create/update/delete/fetch and comment
// add/edit/delete.
//
// Every operation talks to the backend only through gateway.Gateway and
// either returns its payload or a *Rejection. A rejection carries a
// user-facing Reason and a Kind:
//
//   - validation: input refused before any gateway call
//   - gateway: the backend refused the first write or a read; Reason is its message
//   - unauthorized: ownership check failed or a write matched no permitted row
//   - not_found: the target row does not exist
//   - partial: an earlier write of a multi-step operation is already
//     committed and stays committed
//
// Multi-step writes are not transactional. Add Blog can leave a post without
// its images, Register can leave an identity without a profile, and Delete
// Blog stops at the first failing step with earlier deletions applied.
package pipeline

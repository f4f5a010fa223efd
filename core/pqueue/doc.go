// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package pqueue implements an intrusive ordered queue with local-sift
// re-balancing over caller-owned node handles.
package pqueue

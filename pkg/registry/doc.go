// Package registry provides the Primer material registry: an append-only
// collection of educational material records, each owned by the principal
// that registered it.
//
// # Overview
//
// The registry holds a monotonic identifier counter and a mapping from
// MaterialID to Material. It exposes exactly four operations:
//
//   - Register allocates the next identifier and stores a new record
//   - GetMaterial looks a record up by identifier
//   - MaterialCount reports how many records have been registered
//   - UpdateAvailability flips the availability flag, owner only
//
// The caller identity (Principal) and the logical timestamp (Height) are
// supplied by the surrounding execution context on every call. The registry
// never derives them itself.
//
// # Implementations
//
// Registry is the in-memory implementation. It is safe for concurrent use:
// mutations are serialized and reads return copies.
//
// Client implements the same operations on Redis for use across processes.
// Allocation and the ownership check run as single server-side scripts so the
// counter and the record map can never disagree.
//
// # Errors
//
// UpdateAvailability fails with ErrNotFound when the identifier has never been
// allocated and with ErrUnauthorized when the caller is not the owner.
// GetMaterial never fails for a missing record; it reports absence through its
// boolean result.
//
// # Usage Example
//
//	r := registry.New()
//
//	id := r.Register(registry.Details{
//		Title:       "Math Workbook",
//		Description: "Comprehensive workbook for algebra",
//		Subject:     "Mathematics",
//		GradeLevel:  "High School",
//	}, "user1", 100)
//
//	if err := r.UpdateAvailability(id, false, "user2"); registry.IsUnauthorized(err) {
//		// only user1 may change availability
//	}
//
// # Redis Schema
//
// All Redis keys follow the pattern: primer:{instance_name}:{entity}
//
// Materials: primer:{instance_name}:material:{id}
// Sequence: primer:{instance_name}:material_seq
// Logical clock: primer:{instance_name}:height
//
// Pub/Sub channel: primer:{instance_name}:material_events
package registry

package registry

import "fmt"

// Redis key pattern helpers
//
// All Redis keys and Pub/Sub channels are namespaced by instance name so that
// several registries can share one Redis server.
//
// Key pattern: primer:{instance_name}:{entity}
// Channel pattern: primer:{instance_name}:{event_type}_events

// MaterialKeyPrefix returns the prefix shared by all material hashes.
// The Lua scripts append the allocated identifier to it.
// Pattern: primer:{instance_name}:material:
func MaterialKeyPrefix(instanceName string) string {
	return fmt.Sprintf("primer:%s:material:", instanceName)
}

// MaterialKey returns the Redis key for a material hash.
// Pattern: primer:{instance_name}:material:{id}
func MaterialKey(instanceName string, id MaterialID) string {
	return MaterialKeyPrefix(instanceName) + id.String()
}

// MaterialSeqKey returns the Redis key holding the last allocated identifier.
// Pattern: primer:{instance_name}:material_seq
func MaterialSeqKey(instanceName string) string {
	return fmt.Sprintf("primer:%s:material_seq", instanceName)
}

// HeightKey returns the Redis key of the instance's logical clock.
// Pattern: primer:{instance_name}:height
func HeightKey(instanceName string) string {
	return fmt.Sprintf("primer:%s:height", instanceName)
}

// MaterialEventsChannel returns the Pub/Sub channel name for material events.
// Pattern: primer:{instance_name}:material_events
func MaterialEventsChannel(instanceName string) string {
	return fmt.Sprintf("primer:%s:material_events", instanceName)
}

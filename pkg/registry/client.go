package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// registerScript allocates the next identifier and writes the material hash in
// one step.
// KEYS[1] = sequence key, ARGV[1] = material key prefix, ARGV[2..] = field/value pairs
//
// The material key is built inside the script and is not declared in KEYS, so
// primer assumes a single Redis node. Redis Cluster is not supported.
var registerScript = redis.NewScript(`
local id = redis.call('INCR', KEYS[1])
redis.call('HSET', ARGV[1] .. id, 'id', tostring(id), unpack(ARGV, 2))
return id
`)

// Status codes returned by availabilityScript.
const (
	statusOK           = 0
	statusNotFound     = 1
	statusUnauthorized = 2
)

// availabilityScript checks existence, then ownership, then writes the flag.
// Replies {status} on rejection and {0, HGETALL} after the write, so the
// returned state is exactly what this call stored.
// KEYS[1] = material key, ARGV[1] = caller, ARGV[2] = "1" or "0"
var availabilityScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return {1}
end
if redis.call('HGET', KEYS[1], 'owner') ~= ARGV[1] then
	return {2}
end
redis.call('HSET', KEYS[1], 'available', ARGV[2])
return {0, redis.call('HGETALL', KEYS[1])}
`)

// Client provides instance-scoped Redis operations for the material registry.
// All keys and channels are automatically namespaced with the instance name.
// The client is thread-safe and can be used concurrently from multiple goroutines.
type Client struct {
	rdb          *redis.Client
	instanceName string
}

// NewClient creates a new registry client for the specified instance.
//
// Parameters:
//   - redisOpts: Redis connection options (address, password, DB, etc.)
//   - instanceName: registry instance identifier (must not be empty)
//
// Returns an error if instanceName is empty.
func NewClient(redisOpts *redis.Options, instanceName string) (*Client, error) {
	if instanceName == "" {
		return nil, fmt.Errorf("instance name cannot be empty")
	}

	return &Client{
		rdb:          redis.NewClient(redisOpts),
		instanceName: instanceName,
	}, nil
}

// InstanceName returns the namespace this client operates in.
func (c *Client) InstanceName() string {
	return c.instanceName
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Redis returns the underlying connection so collaborators such as the
// logical clock can share the client's pool.
func (c *Client) Redis() redis.Cmdable {
	return c.rdb
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Register stores a new available material owned by caller and stamped with
// height at, then publishes an EventRegistered event.
// Identifier allocation and the write happen in a single script, so concurrent
// registrations from any number of processes never skip or reuse an identifier.
// If only the event publish fails, the material stays registered and its
// identifier is returned together with a *PublishError.
func (c *Client) Register(ctx context.Context, d Details, caller Principal, at Height) (MaterialID, error) {
	m := newMaterial(0, d, caller, at)

	hash := MaterialToHash(m)
	delete(hash, fieldID)

	args := make([]interface{}, 0, 1+2*len(hash))
	args = append(args, MaterialKeyPrefix(c.instanceName))
	for field, value := range hash {
		args = append(args, field, value)
	}

	n, err := registerScript.Run(ctx, c.rdb, []string{MaterialSeqKey(c.instanceName)}, args...).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to register material in Redis: %w", err)
	}

	m.ID = MaterialID(n)
	if err := c.publish(ctx, EventRegistered, m); err != nil {
		return m.ID, &PublishError{Kind: EventRegistered, ID: m.ID, Err: err}
	}

	return m.ID, nil
}

// GetMaterial retrieves a material by identifier.
// A missing material is reported as (Material{}, false, nil), never as an error.
func (c *Client) GetMaterial(ctx context.Context, id MaterialID) (Material, bool, error) {
	hashData, err := c.rdb.HGetAll(ctx, MaterialKey(c.instanceName, id)).Result()
	if err != nil {
		return Material{}, false, fmt.Errorf("failed to read material from Redis: %w", err)
	}

	// HGetAll returns an empty map for non-existent keys
	if len(hashData) == 0 {
		return Material{}, false, nil
	}

	m, err := HashToMaterial(hashData)
	if err != nil {
		return Material{}, false, fmt.Errorf("failed to deserialize material %d: %w", id, err)
	}

	return m, true, nil
}

// MaterialCount returns the number of materials registered in this instance.
func (c *Client) MaterialCount(ctx context.Context) (uint64, error) {
	n, err := c.rdb.Get(ctx, MaterialSeqKey(c.instanceName)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read material count from Redis: %w", err)
	}
	return n, nil
}

// UpdateAvailability sets the availability flag of a material and publishes
// an EventAvailabilityChanged event carrying the state this call stored.
// Returns ErrNotFound if the material does not exist and ErrUnauthorized if
// caller is not its owner. Nothing is written on either error.
// Once the flag is written, the only possible error is a *PublishError.
func (c *Client) UpdateAvailability(ctx context.Context, id MaterialID, available bool, caller Principal) error {
	key := MaterialKey(c.instanceName, id)

	reply, err := availabilityScript.Run(ctx, c.rdb, []string{key}, string(caller), encodeBool(available)).Slice()
	if err != nil {
		return fmt.Errorf("failed to update material availability in Redis: %w", err)
	}
	if len(reply) == 0 {
		return fmt.Errorf("empty availability script reply")
	}

	status, ok := reply[0].(int64)
	if !ok {
		return fmt.Errorf("unexpected availability script status %v", reply[0])
	}

	switch status {
	case statusOK:
	case statusNotFound:
		return fmt.Errorf("material %d: %w", id, ErrNotFound)
	case statusUnauthorized:
		return fmt.Errorf("material %d: %w", id, ErrUnauthorized)
	default:
		return fmt.Errorf("unexpected availability script status %d", status)
	}

	m, err := stateFromReply(reply)
	if err != nil {
		return &PublishError{Kind: EventAvailabilityChanged, ID: id, Err: err}
	}

	if err := c.publish(ctx, EventAvailabilityChanged, m); err != nil {
		return &PublishError{Kind: EventAvailabilityChanged, ID: id, Err: err}
	}

	return nil
}

// stateFromReply decodes the HGETALL array that follows a successful
// availability write.
func stateFromReply(reply []interface{}) (Material, error) {
	if len(reply) < 2 {
		return Material{}, fmt.Errorf("availability script reply has no material state")
	}
	flat, ok := reply[1].([]interface{})
	if !ok || len(flat)%2 != 0 {
		return Material{}, fmt.Errorf("malformed material state in availability script reply")
	}

	hash := make(map[string]string, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		field, fok := flat[i].(string)
		value, vok := flat[i+1].(string)
		if !fok || !vok {
			return Material{}, fmt.Errorf("malformed material state in availability script reply")
		}
		hash[field] = value
	}

	return HashToMaterial(hash)
}

// publish sends the material state after a change to the events channel.
func (c *Client) publish(ctx context.Context, kind EventKind, m Material) error {
	event := MaterialEvent{
		ID:       uuid.New().String(),
		Kind:     kind,
		Material: m,
		AtMs:     time.Now().UnixMilli(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal material event: %w", err)
	}

	if err := c.rdb.Publish(ctx, MaterialEventsChannel(c.instanceName), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish material event: %w", err)
	}

	return nil
}

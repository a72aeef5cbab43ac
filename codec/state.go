package codec

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/meshforge/scenexml/errs"
	"github.com/meshforge/scenexml/internal/hash"
	"github.com/meshforge/scenexml/rtypes"
)

// EmitState carries write-path state across one whole document: the referent
// ids assigned to instances and the shared-string interning table.
//
// It is owned by the document serializer and threaded through EncodeValue;
// the codec itself keeps no cross-call state.
type EmitState struct {
	referents   map[rtypes.Ref]string
	shared      map[uint64][]byte
	sharedOrder []uint64
}

// NewEmitState creates an empty EmitState for one document traversal.
func NewEmitState() *EmitState {
	return &EmitState{
		referents: make(map[rtypes.Ref]string),
		shared:    make(map[uint64][]byte),
	}
}

// AssignReferent allocates a document referent id for the instance identity
// if it does not have one yet, and returns it. Ids are sequential in
// assignment order, so serialization output is deterministic.
func (s *EmitState) AssignReferent(ref rtypes.Ref) string {
	if id, ok := s.referents[ref]; ok {
		return id
	}

	id := "ref" + strconv.Itoa(len(s.referents))
	s.referents[ref] = id

	return id
}

// LookupReferent returns the document referent id assigned to the instance
// identity. Instances outside the serialized tree have no id; a Ref property
// pointing at one is written as null.
func (s *EmitState) LookupReferent(ref rtypes.Ref) (string, bool) {
	id, ok := s.referents[ref]
	return id, ok
}

// InternSharedString adds a payload to the shared-string table and returns
// its key. Identical payloads share one table entry; a distinct payload
// hashing to an occupied key is a collision, and keeping either payload
// would silently corrupt the other's property.
func (s *EmitState) InternSharedString(data []byte) (uint64, error) {
	key := hash.Key(data)
	if existing, ok := s.shared[key]; ok {
		if !bytes.Equal(existing, data) {
			return 0, fmt.Errorf("%w: %016x", errs.ErrHashCollision, key)
		}

		return key, nil
	}

	s.shared[key] = data
	s.sharedOrder = append(s.sharedOrder, key)

	return key, nil
}

// SharedStrings returns the interned payloads in first-use order, for the
// document trailer.
func (s *EmitState) SharedStrings() ([]uint64, map[uint64][]byte) {
	return s.sharedOrder, s.shared
}

// RefRewrite records a Ref property that must be resolved once the whole
// tree has been read, since a referent may appear after its first use.
type RefRewrite struct {
	Instance   rtypes.Ref
	Property   string
	ReferentID string
}

// SharedStringRewrite records a SharedString property waiting for the
// document's shared-string table.
type SharedStringRewrite struct {
	Instance rtypes.Ref
	Property string
	Key      uint64
}

// ParseState carries read-path state across one whole document: the mapping
// from document referent ids to instance identities, the shared-string table,
// and the property rewrites to apply after the tree is read.
type ParseState struct {
	referents   map[string]rtypes.Ref
	shared      map[uint64][]byte
	refRewrites []RefRewrite
	ssRewrites  []SharedStringRewrite
}

// NewParseState creates an empty ParseState for one document traversal.
func NewParseState() *ParseState {
	return &ParseState{
		referents: make(map[string]rtypes.Ref),
		shared:    make(map[uint64][]byte),
	}
}

// AddReferent registers the instance identity found under a document
// referent id.
func (s *ParseState) AddReferent(id string, ref rtypes.Ref) {
	s.referents[id] = ref
}

// LookupReferent resolves a document referent id to an instance identity.
func (s *ParseState) LookupReferent(id string) (rtypes.Ref, bool) {
	ref, ok := s.referents[id]
	return ref, ok
}

// AddSharedString registers a payload from the document's shared-string
// table under its key. A second, different payload under the same key means
// the table is ambiguous and the document cannot be trusted.
func (s *ParseState) AddSharedString(key uint64, data []byte) error {
	if existing, ok := s.shared[key]; ok && !bytes.Equal(existing, data) {
		return fmt.Errorf("%w: %016x", errs.ErrHashCollision, key)
	}

	s.shared[key] = data

	return nil
}

// LookupSharedString resolves a shared-string key to its payload.
func (s *ParseState) LookupSharedString(key uint64) ([]byte, bool) {
	data, ok := s.shared[key]
	return data, ok
}

func (s *ParseState) recordRefRewrite(inst rtypes.Ref, property, referentID string) {
	s.refRewrites = append(s.refRewrites, RefRewrite{Instance: inst, Property: property, ReferentID: referentID})
}

func (s *ParseState) recordSharedStringRewrite(inst rtypes.Ref, property string, key uint64) {
	s.ssRewrites = append(s.ssRewrites, SharedStringRewrite{Instance: inst, Property: property, Key: key})
}

// RefRewrites returns the Ref properties recorded during decode.
func (s *ParseState) RefRewrites() []RefRewrite {
	return s.refRewrites
}

// SharedStringRewrites returns the SharedString properties recorded during
// decode.
func (s *ParseState) SharedStringRewrites() []SharedStringRewrite {
	return s.ssRewrites
}

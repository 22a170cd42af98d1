// Package identity derives stable ids for records that must keep the same
// id across seeds, imports and environments.
package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "bilingual-cms:"

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by entity type to avoid collisions.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SingletonUUID is the id of the one document stored for kind under key
// ("navbar", "contact", or the listing kind for page settings).
func SingletonUUID(kind, key string) uuid.UUID {
	return UUID(namespace + "singleton:" + normalize(kind) + ":" + normalize(key))
}

// ImportUUID is the id given to a record imported from a source file, so
// re-running an import updates rather than duplicates.
func ImportUUID(kind, slug string) uuid.UUID {
	return UUID(namespace + "import:" + normalize(kind) + ":" + normalize(slug))
}

// ItemID derives a list-item id shared by both language versions of an
// item. The result is a short hex string suitable for JSON payloads.
func ItemID(recordID uuid.UUID, list string, position int, seed string) string {
	key := namespace + "item:" + recordID.String() + ":" + normalize(list) + ":" + strings.TrimSpace(seed)
	if strings.TrimSpace(seed) == "" {
		key += ":" + uuid.NewSHA1(uuid.NameSpaceOID, []byte{byte(position >> 8), byte(position)}).String()
	}
	id := UUID(key)
	return strings.ReplaceAll(id.String(), "-", "")[:12]
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

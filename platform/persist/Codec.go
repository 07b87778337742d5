package persist

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"istopoly/app/models"
)

// snapshotSchema is what a restorable bundle must look like. Anything that
// fails it is refused before the engine ever sees it.
const snapshotSchema = `{
  "type": "object",
  "required": ["version", "players", "board", "cur_player", "round", "pot"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "cur_player": {"type": "integer", "minimum": 0, "maximum": 5},
    "round": {"type": "integer", "minimum": 0},
    "pot": {"type": "integer", "minimum": 0},
    "players": {
      "type": "array",
      "minItems": 2,
      "maxItems": 6,
      "items": {
        "type": "object",
        "required": ["name", "money", "pos"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "color": {"type": "string"},
          "money": {"type": "integer", "minimum": 0},
          "pos": {"type": "integer", "minimum": 0, "maximum": 39},
          "in_jail": {"type": "boolean"},
          "jail_turns": {"type": "integer", "minimum": 0},
          "doubles": {"type": "integer", "minimum": 0},
          "is_bot": {"type": "boolean"},
          "bankrupt": {"type": "boolean"}
        }
      }
    },
    "board": {
      "type": "array",
      "minItems": 40,
      "maxItems": 40,
      "items": {
        "type": "object",
        "required": ["name", "kind", "owner_id", "houses"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "kind": {"type": "string"},
          "owner_id": {"type": "integer", "minimum": -1, "maximum": 6},
          "houses": {"type": "integer", "minimum": 0, "maximum": 5},
          "mortgaged": {"type": "boolean"}
        }
      }
    }
  }
}`

var schema = jsonschema.MustCompileString("snapshot.json", snapshotSchema)

// Encode serializes a snapshot to a compressed blob.
func Encode(snap models.Snapshot) ([]byte, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// Decode validates and deserializes a blob produced by Encode. A corrupt or
// schema-violating blob is rejected rather than restored.
func Decode(blob []byte) (models.Snapshot, error) {
	var snap models.Snapshot
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return snap, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return snap, fmt.Errorf("snapshot blob: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return snap, fmt.Errorf("snapshot json: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return snap, fmt.Errorf("snapshot schema: %w", err)
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		return snap, err
	}
	return snap, nil
}

package storage

// ConfigJSONSchema documents the runtime shape of Config. sqlite and
// postgres require a DSN.
const ConfigJSONSchema = `
{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "StorageConfig",
  "type": "object",
  "required": ["driver"],
  "properties": {
    "driver": {
      "type": "string",
      "enum": ["memory", "sqlite", "postgres"]
    },
    "dsn": {
      "type": "string",
      "minLength": 1
    },
    "maxOpenConns": {
      "type": "integer",
      "minimum": 0
    },
    "debug": {
      "type": "boolean"
    }
  },
  "if": {
    "properties": { "driver": { "enum": ["sqlite", "postgres"] } }
  },
  "then": {
    "required": ["dsn"]
  },
  "additionalProperties": false
}
`

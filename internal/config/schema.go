package config

import (
	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed worldserver.schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("worldserver.schema.json", schemaSource)

package jsonfile

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaID identifies the keymap file schema.
const SchemaID = "https://github.com/bnema/tapmap/keymaps.schema.json"

// Schema returns the JSON Schema of the keymap file, indented for humans.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		// hold and label are optional; everything else is required
		RequiredFromJSONSchemaTags: false,
	}
	schema := r.Reflect(&[]Record{})
	schema.ID = SchemaID
	schema.Title = "tapmap keymaps"
	schema.Description = "Ordered list of on-screen touch regions bound to key combinations"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

package generation

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

var reflector = &jsonschema.Reflector{
	DoNotReference:             true,
	ExpandedStruct:             true,
	AllowAdditionalProperties:  true,
	RequiredFromJSONSchemaTags: true,
}

// reflects a response struct into a schema for Request.ResponseSchema
func SchemaFor(v any) json.RawMessage {
	s := reflector.Reflect(v)
	s.Version = ""
	s.ID = ""

	raw, err := json.Marshal(s)
	if err != nil {
		// reflected schemas always marshal; a failure here is a programming error
		panic(fmt.Sprintf("generation: failed to marshal schema for %T: %v", v, err))
	}

	return raw
}

// Package docs registers the API document with swag so echo-swagger can serve it under
// /swagger/. The document is the same OpenAPI file the request validator uses.
package docs

import (
	"encoding/json"
	"fmt"

	"github.com/swaggo/swag"

	"shipping/internal/generated/servers"
)

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Miku Express Shipping API",
	Description:      "Shipment registration and tracking.",
	InfoInstanceName: swag.Name,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// Register renders the embedded OpenAPI document and registers it under swag.Name.
func Register() error {
	doc, err := servers.GetSwagger()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}

	SwaggerInfo.SwaggerTemplate = string(raw)
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
	return nil
}

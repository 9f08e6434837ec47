package openapi

import "maps"

// BearerScheme names the JWT security scheme registered by NewComponents.
const BearerScheme = "bearerAuth"

// NewComponents creates Components with the response envelope schemas,
// the shared failure responses, and the bearer security scheme.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Envelope": {
				Type: "object",
				Properties: map[string]*Schema{
					"success":    {Type: "boolean"},
					"data":       {Description: "Operation payload, present on success"},
					"message":    {Type: "string", Description: "Confirmation text for operations without a payload"},
					"statusCode": {Type: "integer", Example: 200},
				},
				Required: []string{"success", "statusCode"},
			},
			"ErrorEnvelope": {
				Type: "object",
				Properties: map[string]*Schema{
					"success":    {Type: "boolean", Example: false},
					"error":      {Type: "string", Description: "Error message; validation messages are joined with \"; \""},
					"statusCode": {Type: "integer", Example: 400},
				},
				Required: []string{"success", "error", "statusCode"},
			},
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"pageNumber": {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"pageSize":   {Type: "integer", Description: "Results per page", Example: 10},
				},
			},
		},
		Responses: map[string]*Response{
			"Success":      ResponseJSON("Successful operation", "Envelope"),
			"BadRequest":   errorResponse("Invalid request or failed validation"),
			"Unauthorized": errorResponse("Missing or invalid credentials"),
			"Forbidden":    errorResponse("Caller does not own the resource"),
			"NotFound":     errorResponse("Resource not found"),
		},
		SecuritySchemes: map[string]*SecurityScheme{
			BearerScheme: {
				Type:         "http",
				Scheme:       "bearer",
				BearerFormat: "JWT",
			},
		},
	}
}

func errorResponse(description string) *Response {
	return ResponseJSON(description, "ErrorEnvelope")
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}

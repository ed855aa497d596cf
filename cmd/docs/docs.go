// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with `swag init -g cmd/expense_admin/main.go -o cmd/docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/currencies/create": {"post": {"security": [{"BearerAuth": []}], "tags": ["currencies"], "summary": "Create a currency"}},
        "/currencies/list": {"post": {"security": [{"BearerAuth": []}], "tags": ["currencies"], "summary": "List currencies"}},
        "/currencies/details": {"post": {"security": [{"BearerAuth": []}], "tags": ["currencies"], "summary": "Get currency details"}},
        "/currencies/update": {"post": {"security": [{"BearerAuth": []}], "tags": ["currencies"], "summary": "Update a currency"}},
        "/currencies/delete": {"post": {"security": [{"BearerAuth": []}], "tags": ["currencies"], "summary": "Delete a currency"}},
        "/currencies/set-base": {"post": {"security": [{"BearerAuth": []}], "tags": ["currencies"], "summary": "Set the base currency"}},
        "/currencies/check-usage": {"post": {"security": [{"BearerAuth": []}], "tags": ["currencies"], "summary": "Check currency usage"}},
        "/currencies/convert": {"post": {"security": [{"BearerAuth": []}], "tags": ["currencies"], "summary": "Convert an amount"}},
        "/currencies/exchange-rates/upsert": {"post": {"security": [{"BearerAuth": []}], "tags": ["exchange-rates"], "summary": "Create or supersede an exchange rate"}},
        "/currencies/exchange-rates/list": {"post": {"security": [{"BearerAuth": []}], "tags": ["exchange-rates"], "summary": "List exchange rates"}},
        "/currencies/exchange-rates/delete": {"post": {"security": [{"BearerAuth": []}], "tags": ["exchange-rates"], "summary": "Delete an exchange rate"}},
        "/currencies/exchange-rates/bulk-update": {"post": {"security": [{"BearerAuth": []}], "tags": ["exchange-rates"], "summary": "Bulk update exchange rates"}},
        "/currencies/policy/get": {"post": {"security": [{"BearerAuth": []}], "tags": ["currency-policy"], "summary": "Get the currency policy"}},
        "/currencies/policy/update": {"post": {"security": [{"BearerAuth": []}], "tags": ["currency-policy"], "summary": "Update the currency policy"}},
        "/{kind}/create": {"post": {"security": [{"BearerAuth": []}], "tags": ["master-data"], "summary": "Create a master-data record"}},
        "/{kind}/list": {"post": {"security": [{"BearerAuth": []}], "tags": ["master-data"], "summary": "List master-data records"}},
        "/{kind}/details": {"post": {"security": [{"BearerAuth": []}], "tags": ["master-data"], "summary": "Get a master-data record"}},
        "/{kind}/update": {"post": {"security": [{"BearerAuth": []}], "tags": ["master-data"], "summary": "Update a master-data record"}},
        "/{kind}/delete": {"post": {"security": [{"BearerAuth": []}], "tags": ["master-data"], "summary": "Delete a master-data record"}},
        "/company/details": {"post": {"security": [{"BearerAuth": []}], "tags": ["company"], "summary": "Get company details"}},
        "/company/update": {"post": {"security": [{"BearerAuth": []}], "tags": ["company"], "summary": "Update company details"}},
        "/expense-categories/create": {"post": {"security": [{"BearerAuth": []}], "tags": ["expense-categories"], "summary": "Create an expense category"}},
        "/expense-categories/list": {"post": {"security": [{"BearerAuth": []}], "tags": ["expense-categories"], "summary": "List expense categories"}},
        "/expense-categories/tree": {"post": {"security": [{"BearerAuth": []}], "tags": ["expense-categories"], "summary": "Get the category tree"}},
        "/expense-categories/details": {"post": {"security": [{"BearerAuth": []}], "tags": ["expense-categories"], "summary": "Get an expense category"}},
        "/expense-categories/update": {"post": {"security": [{"BearerAuth": []}], "tags": ["expense-categories"], "summary": "Update an expense category"}},
        "/expense-categories/delete": {"post": {"security": [{"BearerAuth": []}], "tags": ["expense-categories"], "summary": "Delete an expense category"}},
        "/location-groups/create": {"post": {"security": [{"BearerAuth": []}], "tags": ["location-groups"], "summary": "Create a location group"}},
        "/location-groups/list": {"post": {"security": [{"BearerAuth": []}], "tags": ["location-groups"], "summary": "List location groups"}},
        "/location-groups/details": {"post": {"security": [{"BearerAuth": []}], "tags": ["location-groups"], "summary": "Get a location group"}},
        "/location-groups/update": {"post": {"security": [{"BearerAuth": []}], "tags": ["location-groups"], "summary": "Update a location group"}},
        "/location-groups/delete": {"post": {"security": [{"BearerAuth": []}], "tags": ["location-groups"], "summary": "Delete a location group"}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Expense Admin API",
	Description:      "Back-office API for currencies, exchange rates, master data, expense categories and location groups.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

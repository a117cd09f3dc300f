package schema

import "time"

const OrderSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "order",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "email", "type": "string"},
		{"name": "address", "type": "string"},
		{"name": "phone", "type": "string"},
		{"name": "items", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "line_item",
				"fields": [
					{"name": "product_id", "type": "string"},
					{"name": "title", "type": "string"},
					{"name": "price", "type": "string"},
					{"name": "quantity", "type": "int"}
				]
			}
		}},
		{"name": "total", "type": "string"},
		{"name": "tax", "type": "string"},
		{"name": "grand_total", "type": "string"},
		{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

// Money amounts travel as decimal strings to keep them exact.
type (
	OrderV1 struct {
		ID         string       `avro:"id"`
		Name       string       `avro:"name"`
		Email      string       `avro:"email"`
		Address    string       `avro:"address"`
		Phone      string       `avro:"phone"`
		Items      []LineItemV1 `avro:"items"`
		Total      string       `avro:"total"`
		Tax        string       `avro:"tax"`
		GrandTotal string       `avro:"grand_total"`
		CreatedAt  time.Time    `avro:"created_at"`
	}

	LineItemV1 struct {
		ProductID string `avro:"product_id"`
		Title     string `avro:"title"`
		Price     string `avro:"price"`
		Quantity  int    `avro:"quantity"`
	}
)

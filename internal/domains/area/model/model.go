package model

const (
	TableName  = "areas"
	EntityName = "area"

	FieldID   = "id"
	FieldName = "name"
)

type Area struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

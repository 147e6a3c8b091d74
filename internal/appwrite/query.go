package appwrite

import (
	"encoding/json"
)

// Attributes maintained by the service on every document
const (
	AttrID        = "$id"
	AttrCreatedAt = "$createdAt"
	AttrUpdatedAt = "$updatedAt"
)

// query is the JSON form of a document query understood by the 1.5 API
type query struct {
	Method    string        `json:"method"`
	Attribute string        `json:"attribute,omitempty"`
	Values    []interface{} `json:"values,omitempty"`
}

func (q query) String() string {
	encoded, err := json.Marshal(q)
	if err != nil {
		// Values are strings and ints only
		panic(err)
	}
	return string(encoded)
}

// Equal matches documents whose attribute equals any of values
func Equal(attribute string, values ...interface{}) string {
	return query{Method: "equal", Attribute: attribute, Values: values}.String()
}

// Search matches documents whose attribute full-text matches term
func Search(attribute, term string) string {
	return query{Method: "search", Attribute: attribute, Values: []interface{}{term}}.String()
}

// OrderDesc sorts by attribute, descending
func OrderDesc(attribute string) string {
	return query{Method: "orderDesc", Attribute: attribute}.String()
}

// OrderAsc sorts by attribute, ascending
func OrderAsc(attribute string) string {
	return query{Method: "orderAsc", Attribute: attribute}.String()
}

// Limit caps the number of returned documents
func Limit(n int) string {
	return query{Method: "limit", Values: []interface{}{n}}.String()
}

// Offset skips the first n documents
func Offset(n int) string {
	return query{Method: "offset", Values: []interface{}{n}}.String()
}

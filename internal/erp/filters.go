package erp

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// filter is one [field, operator, value] condition of a Frappe list query.
type filter [3]interface{}

// listEndpoint builds "<DocType>?limit_page_length=0&fields=[...][&filters=...]"
// with fields and filters JSON-encoded and URL-escaped. Without fields a
// Frappe list answers only the record names.
func listEndpoint(doctype string, fields []string, filters ...filter) (string, error) {
	if len(fields) == 0 {
		return "", fmt.Errorf("%s: no fields to list", doctype)
	}
	encodedFields, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode fields: %w", err)
	}
	endpoint := url.PathEscape(doctype) + "?limit_page_length=0&fields=" + url.QueryEscape(string(encodedFields))
	if len(filters) == 0 {
		return endpoint, nil
	}

	encoded, err := json.Marshal(filters)
	if err != nil {
		return "", fmt.Errorf("failed to encode filters: %w", err)
	}

	return endpoint + "&filters=" + url.QueryEscape(string(encoded)), nil
}

// recordEndpoint builds "<DocType>/<id>", rejecting records never saved.
func recordEndpoint(doctype string, id *string) (string, error) {
	if id == nil || *id == "" {
		return "", fmt.Errorf("%s: %w", doctype, ErrMissingID)
	}
	return url.PathEscape(doctype) + "/" + url.PathEscape(*id), nil
}
